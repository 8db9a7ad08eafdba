package fs

import (
	"errors"
	"fmt"
)

// 错误类别，使用 errors.Is 判断
var (
	// ErrNotFound 构造时路径不存在或类型不符
	ErrNotFound = errors.New("not found")
	// ErrIO 运行期读取/复制/移动失败
	ErrIO = errors.New("io error")
	// ErrUnsupportedPlatform 当前平台不支持该能力 (例如属主解析)
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// PathError 记录失败的操作、路径以及底层系统错误
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap 同时暴露错误类别和底层错误，
// 因此 errors.Is(err, ErrIO) 与 errors.Is(err, fs.ErrNotExist) 都成立
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Kind: ErrNotFound, Err: err}
}

func ioFailure(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Kind: ErrIO, Err: err}
}
