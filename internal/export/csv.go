// Package export 把展开后的表格写入各种目标
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filefolder/internal/table"

	"github.com/klauspost/compress/zstd"
)

// WriteCSV 写出表头和所有行
func WriteCSV(w io.Writer, t table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("写入 CSV 失败: %w", err)
	}
	return nil
}

// WriteCSVFile 把表格写入 path，自动创建父目录。
// 文件名以 .zst 结尾时使用 zstd 压缩。
func WriteCSVFile(path string, t table.Table) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		return WriteCSV(f, t)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd init failed: %w", err)
	}
	if err := WriteCSV(enc, t); err != nil {
		enc.Close()
		return err
	}
	// Close 会刷出最后一帧
	return enc.Close()
}
