package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// hashChunkSize 计算哈希时每次读取的字节数
const hashChunkSize = 64 * 1024

// File 表示磁盘上的一个普通文件。
// 元数据在构造时读取；哈希和日期戳在第一次访问时计算并缓存。
// File 不支持并发访问。
type File struct {
	path       string // 调用方给出的路径 (move 后为目标路径)
	systemPath string // 绝对路径
	name       string // 不含扩展名的文件名
	extension  string // 不含 "." 的扩展名

	metadata Metadata

	hash   string
	hashed bool

	datestamp time.Time
	dated     bool

	opts *Options
	open func(name string) (io.ReadCloser, error)
}

// NewFile 根据路径创建 File，路径必须指向已存在的普通文件
func NewFile(path string, opts ...Option) (*File, error) {
	return newFile(path, newOptions(opts))
}

func newFile(path string, opts *Options) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, notFound("stat", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, notFound("stat", path, err)
	}
	return newFileFromInfo(path, abs, info, opts)
}

// newFileFromInfo 复用目录扫描时已经拿到的 FileInfo，避免重复 stat
func newFileFromInfo(path, abs string, info os.FileInfo, opts *Options) (*File, error) {
	if !info.Mode().IsRegular() {
		return nil, notFound("stat", path, fmt.Errorf("not a regular file (mode %s)", info.Mode()))
	}
	f := &File{
		opts: opts,
		open: openFile,
	}
	f.setPath(path, abs)
	f.metadata = readMetadata(abs, info, opts.Owner, opts.Logger)
	return f, nil
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (f *File) setPath(path, abs string) {
	f.path = path
	f.systemPath = abs
	f.name, f.extension = splitName(filepath.Base(abs))
}

// splitName 拆分文件名与扩展名，".bashrc" 这类隐藏文件没有扩展名
func splitName(base string) (stem, ext string) {
	e := filepath.Ext(base)
	if e == "" || e == base {
		return base, ""
	}
	return strings.TrimSuffix(base, e), strings.TrimPrefix(e, ".")
}

// Path 返回构造 (或移动) 时使用的路径
func (f *File) Path() string { return f.path }

// Name 返回不含扩展名的文件名
func (f *File) Name() string { return f.name }

// Extension 返回不含 "." 的扩展名
func (f *File) Extension() string { return f.extension }

// SystemPath 返回绝对路径
func (f *File) SystemPath() string { return f.systemPath }

// Metadata 返回构造时读取的元数据
func (f *File) Metadata() Metadata { return f.metadata }

// HashComputed 报告哈希是否已经计算并缓存
func (f *File) HashComputed() bool { return f.hashed }

// Hash 返回文件内容的 SHA-256 (十六进制)。
// 成功后结果被缓存，不再读盘；失败不缓存，下次访问会重新尝试。
func (f *File) Hash() (string, error) {
	if f.hashed {
		return f.hash, nil
	}

	r, err := f.open(f.systemPath)
	if err != nil {
		return "", ioFailure("hash", f.systemPath, err)
	}
	defer r.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", ioFailure("hash", f.systemPath, err)
	}

	f.hash = hex.EncodeToString(h.Sum(nil))
	f.hashed = true
	return f.hash, nil
}

// Datestamp 返回从文件名 (不含目录) 中解析出的日期，
// 没有匹配时返回 DefaultDatestamp
func (f *File) Datestamp() time.Time {
	if f.dated {
		return f.datestamp
	}
	t, ok := ParseDatestamp(filepath.Base(f.systemPath))
	if !ok {
		t = DefaultDatestamp
	}
	f.datestamp = t
	f.dated = true
	return t
}

// Refresh 重新读取元数据并清空缓存
func (f *File) Refresh() error {
	info, err := os.Stat(f.systemPath)
	if err != nil {
		return notFound("stat", f.systemPath, err)
	}
	if !info.Mode().IsRegular() {
		return notFound("stat", f.systemPath, fmt.Errorf("not a regular file (mode %s)", info.Mode()))
	}
	f.metadata = readMetadata(f.systemPath, info, f.opts.Owner, f.opts.Logger)
	f.hash, f.hashed = "", false
	f.dated = false
	return nil
}

// Copy 把文件复制到 target，保留权限位和访问/修改时间。
// target 已存在时失败 (不覆盖)。返回指向副本的新 File，原对象不变。
func (f *File) Copy(target string) (*File, error) {
	if _, err := os.Stat(f.systemPath); err != nil {
		return nil, notFound("copy", f.systemPath, err)
	}
	dst, err := filepath.Abs(target)
	if err != nil {
		return nil, ioFailure("copy", target, err)
	}
	if err := copyFile(f.systemPath, dst); err != nil {
		return nil, ioFailure("copy", dst, err)
	}
	return newFile(target, f.opts)
}

// Move 把文件移动到 target，成功后更新路径信息。
// target 已存在时失败 (不覆盖)。跨设备时退化为复制后删除源文件。
func (f *File) Move(target string) error {
	if _, err := os.Stat(f.systemPath); err != nil {
		return notFound("move", f.systemPath, err)
	}
	dst, err := filepath.Abs(target)
	if err != nil {
		return ioFailure("move", target, err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return ioFailure("move", dst, iofs.ErrExist)
	}

	if err := os.Rename(f.systemPath, dst); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return ioFailure("move", dst, err)
		}
		if err := copyFile(f.systemPath, dst); err != nil {
			return ioFailure("move", dst, err)
		}
		if err := os.Remove(f.systemPath); err != nil {
			return ioFailure("move", f.systemPath, err)
		}
	}

	f.setPath(target, dst)
	// 内容未变，哈希保留；文件名变了，日期戳要重新解析
	f.dated = false
	return nil
}

// copyFile 复制内容、权限和时间戳，目标已存在时返回 fs.ErrExist。
// 中途失败不会回滚已写入的部分。
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	times := statTimes(src, info)
	return os.Chtimes(dst, times.accessed, times.modified)
}
