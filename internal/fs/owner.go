package fs

import (
	"log/slog"
	"os"
)

// OwnerUnknown 属主无法解析时使用的哨兵值
const OwnerUnknown = "unknown"

// OwnerResolver 把文件的属主解析为可读的身份字符串。
// 各平台的实现由构建标签选择，见 DefaultOwnerResolver。
type OwnerResolver interface {
	Owner(path string, info os.FileInfo) (string, error)
}

// OwnerResolverFunc 允许用普通函数实现 OwnerResolver
type OwnerResolverFunc func(path string, info os.FileInfo) (string, error)

func (f OwnerResolverFunc) Owner(path string, info os.FileInfo) (string, error) {
	return f(path, info)
}

// resolveOwner 失败时降级为 OwnerUnknown，不影响整个元数据获取
func resolveOwner(r OwnerResolver, path string, info os.FileInfo, logger *slog.Logger) string {
	owner, err := r.Owner(path, info)
	if err != nil || owner == "" {
		logger.Debug("无法解析文件属主", "path", path, "err", err)
		return OwnerUnknown
	}
	return owner
}
