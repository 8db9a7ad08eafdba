package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"filefolder/internal/table"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(calculated bool) table.Table {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	row := func(name, folder string, folders []string) table.Row {
		return table.Row{
			FilePath:      "data/" + name + ".txt",
			FileName:      name,
			FileExtension: "txt",
			SystemPath:    "/tmp/data/" + name + ".txt",
			Size:          42,
			CreatedTime:   ts,
			ModifiedTime:  ts,
			AccessedTime:  ts,
			Owner:         "alice",
			FolderPath:    "data",
			FolderName:    folder,
			Folders:       folders,
			Hash:          "deadbeef",
			Datestamp:     time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return table.Table{
		Calculated: calculated,
		Rows: []table.Row{
			row("a", "data", []string{"sub"}),
			row("b, with comma", "data", []string{"sub"}),
			row("c", "sub", nil),
		},
	}
}

func readCSV(t *testing.T, r io.Reader) [][]string {
	t.Helper()
	recs, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestWriteCSV(t *testing.T) {
	tbl := sampleTable(true)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	recs := readCSV(t, &buf)
	require.Len(t, recs, 4)
	assert.Equal(t, tbl.Columns(), recs[0])
	assert.Equal(t, "b, with comma", recs[2][1])
	assert.Equal(t, "2023-05-01", recs[1][len(recs[1])-1])
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()
	tbl := sampleTable(false)

	plain := filepath.Join(dir, "out", "files.csv")
	require.NoError(t, WriteCSVFile(plain, tbl))
	f, err := os.Open(plain)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, readCSV(t, f), 4)

	compressed := filepath.Join(dir, "out", "files.csv.zst")
	require.NoError(t, WriteCSVFile(compressed, tbl))
	zf, err := os.Open(compressed)
	require.NoError(t, err)
	defer zf.Close()

	dec, err := zstd.NewReader(zf)
	require.NoError(t, err)
	defer dec.Close()

	recs := readCSV(t, dec)
	require.Len(t, recs, 4)
	assert.Equal(t, tbl.Columns(), recs[0])
}

func TestDuckDBWriteTable(t *testing.T) {
	db, err := OpenDuckDB(filepath.Join(t.TempDir(), "files.duckdb"))
	require.NoError(t, err)
	defer db.Close()

	ctx := testContext(t)
	first, second := uuid.NewString(), uuid.NewString()

	require.NoError(t, db.WriteTable(ctx, "files", first, sampleTable(false)))
	require.NoError(t, db.WriteTable(ctx, "files", second, sampleTable(true)))

	n, err := db.Count(ctx, "files", first)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = db.Count(ctx, "files", second)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var hash string
	row := db.conn.QueryRowContext(ctx, `SELECT "file.hash" FROM files WHERE scan_id = ? LIMIT 1`, second)
	require.NoError(t, row.Scan(&hash))
	assert.Equal(t, "deadbeef", hash)
}

// testContext 返回在测试结束时取消的 context（等价于 Go 1.24 的 t.Context）
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
