package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Folder 表示一个目录及其直接包含的文件和 (递归模式下的) 子目录。
// 子条目在构造时扫描，之后访问器只返回已收集的结果，除非显式调用 Refresh。
type Folder struct {
	path       string
	systemPath string
	name       string
	recursive  bool

	files   []*File
	folders []*Folder

	opts *Options
}

// NewFolder 扫描 path 指向的目录。
// recursive 为 true 时按深度优先构造完整的子树，否则只收集直接文件。
func NewFolder(path string, recursive bool, opts ...Option) (*Folder, error) {
	return newFolder(path, recursive, newOptions(opts), make(map[string]struct{}))
}

func newFolder(path string, recursive bool, opts *Options, visited map[string]struct{}) (*Folder, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, notFound("stat", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, notFound("stat", path, err)
	}
	if !info.IsDir() {
		return nil, notFound("stat", path, fmt.Errorf("not a directory (mode %s)", info.Mode()))
	}

	d := &Folder{
		path:       path,
		systemPath: abs,
		name:       filepath.Base(abs),
		recursive:  recursive,
		opts:       opts,
	}
	if err := d.scan(visited); err != nil {
		return nil, err
	}
	return d, nil
}

// Path 返回构造时使用的路径
func (d *Folder) Path() string { return d.path }

// Name 返回目录名
func (d *Folder) Name() string { return d.name }

// SystemPath 返回绝对路径
func (d *Folder) SystemPath() string { return d.systemPath }

// Recursive 报告构造时是否请求了递归扫描
func (d *Folder) Recursive() bool { return d.recursive }

// Files 返回直接包含的文件
func (d *Folder) Files() []*File { return d.files }

// Folders 返回直接子目录，非递归模式下为空
func (d *Folder) Folders() []*Folder { return d.folders }

// Refresh 重新扫描目录
func (d *Folder) Refresh() error {
	return d.scan(make(map[string]struct{}))
}

// Walk 对已构建的树做深度优先前序遍历
func (d *Folder) Walk(fn func(*Folder) error) error {
	if err := fn(d); err != nil {
		return err
	}
	for _, child := range d.folders {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

func (d *Folder) scan(visited map[string]struct{}) error {
	logger := d.opts.Logger
	visited[realPath(d.systemPath)] = struct{}{}

	entries, err := os.ReadDir(d.systemPath)
	if err != nil {
		return ioFailure("readdir", d.systemPath, err)
	}

	var (
		files   []*File
		folders []*Folder
	)
	for _, entry := range entries {
		p := filepath.Join(d.systemPath, entry.Name())
		given := filepath.Join(d.path, entry.Name())

		info, err := d.entryInfo(entry, p)
		if err != nil {
			logger.Warn("跳过无法读取的条目", "path", p, "err", err)
			continue
		}
		if info == nil {
			continue
		}

		switch {
		case info.Mode().IsRegular():
			f, err := newFileFromInfo(given, p, info, d.opts)
			if err != nil {
				logger.Warn("跳过文件", "path", p, "err", err)
				continue
			}
			files = append(files, f)

		case info.IsDir():
			if !d.recursive {
				continue
			}
			resolved := realPath(p)
			if _, seen := visited[resolved]; seen {
				logger.Warn("检测到目录循环，跳过", "path", p, "real_path", resolved)
				continue
			}
			child, err := newFolder(given, true, d.opts, visited)
			if err != nil {
				logger.Warn("跳过子目录", "path", p, "err", err)
				continue
			}
			folders = append(folders, child)

		default:
			logger.Debug("跳过特殊文件", "path", p, "mode", info.Mode().String())
		}
	}

	d.files = files
	d.folders = folders
	return nil
}

// entryInfo 返回条目的类型信息；返回 (nil, nil) 表示按配置忽略该条目
func (d *Folder) entryInfo(entry os.DirEntry, path string) (os.FileInfo, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Info()
	}
	if !d.opts.FollowSymlinks {
		return nil, nil
	}
	// 断开的符号链接在这里返回错误，由调用方记录后跳过
	return os.Stat(path)
}

func realPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
