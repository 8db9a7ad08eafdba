//go:build unix

package fs

import (
	"errors"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

type unixOwnerResolver struct{}

// DefaultOwnerResolver 在 POSIX 系统上通过 uid 查询用户名
func DefaultOwnerResolver() OwnerResolver {
	return unixOwnerResolver{}
}

func (unixOwnerResolver) Owner(path string, info os.FileInfo) (string, error) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", ErrUnsupportedPlatform
	}
	uid := strconv.FormatUint(uint64(st.Uid), 10)

	u, err := user.LookupId(uid)
	if err != nil {
		// 容器里常见：uid 在 /etc/passwd 中没有记录，退回数字 uid
		var unknown user.UnknownUserIdError
		if errors.As(err, &unknown) {
			return uid, nil
		}
		return "", err
	}
	return u.Username, nil
}
