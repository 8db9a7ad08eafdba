package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree 创建 data/{a.txt,b.txt,sub/c.txt}
func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "b.txt", "b")
	writeFile(t, root, "sub/c.txt", "c")
	return root
}

func fileNames(files []*File) []string {
	var names []string
	for _, f := range files {
		names = append(names, f.Name()+"."+f.Extension())
	}
	sort.Strings(names)
	return names
}

func TestNewFolderRecursive(t *testing.T) {
	root := buildTree(t)

	d, err := NewFolder(root, true)
	require.NoError(t, err)

	assert.Equal(t, "data", d.Name())
	assert.True(t, d.Recursive())
	assert.True(t, filepath.IsAbs(d.SystemPath()))
	assert.Equal(t, []string{"a.txt", "b.txt"}, fileNames(d.Files()))

	require.Len(t, d.Folders(), 1)
	sub := d.Folders()[0]
	assert.Equal(t, "sub", sub.Name())
	assert.True(t, sub.Recursive())
	assert.Equal(t, []string{"c.txt"}, fileNames(sub.Files()))
	assert.Empty(t, sub.Folders())
}

func TestNewFolderNonRecursive(t *testing.T) {
	root := buildTree(t)
	writeFile(t, root, "sub/deeper/d.txt", "d")

	d, err := NewFolder(root, false)
	require.NoError(t, err)

	assert.Empty(t, d.Folders())
	assert.Equal(t, []string{"a.txt", "b.txt"}, fileNames(d.Files()))
}

func TestNewFolderNotFound(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "a")

	for _, p := range []string{filepath.Join(dir, "missing"), file} {
		d, err := NewFolder(p, true)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestFolderAccessorsAreStable(t *testing.T) {
	root := buildTree(t)
	d, err := NewFolder(root, true)
	require.NoError(t, err)

	before := fileNames(d.Files())
	writeFile(t, root, "late.txt", "late")

	// 访问器不会重新扫描
	assert.Equal(t, before, fileNames(d.Files()))

	require.NoError(t, d.Refresh())
	assert.Equal(t, []string{"a.txt", "b.txt", "late.txt"}, fileNames(d.Files()))
	require.Len(t, d.Folders(), 1)
}

func TestFolderWalk(t *testing.T) {
	root := buildTree(t)
	writeFile(t, root, "sub/deeper/d.txt", "d")
	writeFile(t, root, "zz/e.txt", "e")

	d, err := NewFolder(root, true)
	require.NoError(t, err)

	var visited []string
	require.NoError(t, d.Walk(func(f *Folder) error {
		visited = append(visited, f.Name())
		return nil
	}))
	assert.Equal(t, []string{"data", "sub", "deeper", "zz"}, visited)
}

func TestFolderSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	root := buildTree(t)

	// 指向祖先目录的循环链接
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))
	// 断开的链接
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "broken.txt")))
	// 指向文件的链接
	require.NoError(t, os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "alias.txt")))

	d, err := NewFolder(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "alias.txt", "b.txt"}, fileNames(d.Files()))
	require.Len(t, d.Folders(), 1)
	assert.Empty(t, d.Folders()[0].Folders())

	d, err = NewFolder(root, true, WithFollowSymlinks(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, fileNames(d.Files()))
}
