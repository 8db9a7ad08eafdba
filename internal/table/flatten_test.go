package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filefolder/internal/fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// dataTree 创建 data/{a.txt,b.txt,sub/c.txt}
func dataTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "b.txt", "b")
	writeFile(t, root, "sub/c.txt", "c")
	return root
}

func TestFlattenScenario(t *testing.T) {
	root := dataTree(t)
	d, err := fs.NewFolder(root, true)
	require.NoError(t, err)

	tbl := Flatten(d, false)
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, "data", tbl.Rows[0].FolderName)
	assert.Equal(t, "data", tbl.Rows[1].FolderName)
	assert.Equal(t, "sub", tbl.Rows[2].FolderName)
	assert.Equal(t, "c", tbl.Rows[2].FileName)
	assert.Equal(t, "txt", tbl.Rows[2].FileExtension)

	assert.Equal(t, []string{"sub"}, tbl.Rows[0].Folders)
	assert.Empty(t, tbl.Rows[2].Folders)
	assert.Equal(t, int64(1), tbl.Rows[0].Size)
}

func TestFlattenRowCountMatchesSubtree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	want := 0
	for _, rel := range []string{
		"1.txt", "x/2.txt", "x/3.txt", "x/y/4.txt", "x/y/z/5.txt", "w/6.txt",
	} {
		writeFile(t, root, rel, rel)
		want++
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "nested"), 0o755))

	d, err := fs.NewFolder(root, true)
	require.NoError(t, err)

	var total int
	require.NoError(t, filepath.WalkDir(root, func(_ string, e os.DirEntry, err error) error {
		if err == nil && e.Type().IsRegular() {
			total++
		}
		return err
	}))
	assert.Equal(t, want, total)
	assert.Equal(t, total, Flatten(d, false).Len())
}

func TestFlattenNonRecursiveFolder(t *testing.T) {
	root := dataTree(t)
	d, err := fs.NewFolder(root, false)
	require.NoError(t, err)

	tbl := Flatten(d, false)
	assert.Equal(t, 2, tbl.Len())
	assert.Empty(t, tbl.Rows[0].Folders)
}

func TestFlattenSkipsHashByDefault(t *testing.T) {
	root := dataTree(t)
	d, err := fs.NewFolder(root, true)
	require.NoError(t, err)

	tbl := Flatten(d, false)
	assert.NotContains(t, tbl.Columns(), ColHash)
	assert.NotContains(t, tbl.Columns(), ColDatestamp)

	require.NoError(t, d.Walk(func(folder *fs.Folder) error {
		for _, f := range folder.Files() {
			assert.False(t, f.HashComputed(), f.SystemPath())
		}
		return nil
	}))
	for _, r := range tbl.Rows {
		assert.Empty(t, r.Hash)
	}
}

func TestFlattenCalculatedFields(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	writeFile(t, root, "report-2023-05-01.csv", "hello world")

	d, err := fs.NewFolder(root, true)
	require.NoError(t, err)

	tbl := Flatten(d, true)
	require.Equal(t, 1, tbl.Len())
	assert.Contains(t, tbl.Columns(), ColHash)
	assert.Contains(t, tbl.Columns(), ColDatestamp)

	r := tbl.Rows[0]
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", r.Hash)
	assert.Equal(t, "2023-05-01", r.Datestamp.Format(DatestampLayout))
	assert.True(t, d.Files()[0].HashComputed())
}

func TestFlattenHashFailureKeepsRow(t *testing.T) {
	root := dataTree(t)
	d, err := fs.NewFolder(root, true)
	require.NoError(t, err)

	gone := filepath.Join(root, "a.txt")
	require.NoError(t, os.Remove(gone))

	tbl := Flatten(d, true)
	require.Equal(t, 3, tbl.Len())

	var failed int
	for _, r := range tbl.Rows {
		if strings.HasPrefix(r.Hash, ErrorMarker) {
			failed++
			assert.Contains(t, r.Hash, gone)
			continue
		}
		assert.Len(t, r.Hash, 64)
	}
	assert.Equal(t, 1, failed)
}

func TestTableRecords(t *testing.T) {
	root := dataTree(t)
	d, err := fs.NewFolder(root, true)
	require.NoError(t, err)

	for _, calculated := range []bool{false, true} {
		tbl := Flatten(d, calculated)
		cols := tbl.Columns()
		recs := tbl.Records()
		require.Len(t, recs, tbl.Len())
		for i, rec := range recs {
			assert.Len(t, rec, len(cols))
			assert.Len(t, tbl.Values(i), len(cols))
		}
		assert.Equal(t, `["sub"]`, recs[0][11])
		assert.Equal(t, "[]", recs[2][11])
	}
}
