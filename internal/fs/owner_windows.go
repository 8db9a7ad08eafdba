//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

type windowsOwnerResolver struct{}

// DefaultOwnerResolver 在 Windows 上读取安全描述符中的属主 SID
func DefaultOwnerResolver() OwnerResolver {
	return windowsOwnerResolver{}
}

func (windowsOwnerResolver) Owner(path string, _ os.FileInfo) (string, error) {
	sd, err := windows.GetNamedSecurityInfo(path, windows.SE_FILE_OBJECT, windows.OWNER_SECURITY_INFORMATION)
	if err != nil {
		return "", err
	}
	sid, _, err := sd.Owner()
	if err != nil {
		return "", err
	}
	account, domain, _, err := sid.LookupAccount("")
	if err != nil {
		// 无法映射到账户名时返回 SID 字符串
		return sid.String(), nil
	}
	return domain + `\` + account, nil
}
