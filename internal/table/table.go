// Package table 把 File/Folder 树展开为每个文件一行的表格
package table

import (
	"encoding/json"
	"strconv"
	"time"
)

// 列名，file.* 来自文件本身，folder.* 来自文件的直接父目录
const (
	ColFilePath      = "file.file_path"
	ColFileName      = "file.file_name"
	ColFileExtension = "file.file_extension"
	ColSystemPath    = "file.system_path"
	ColSize          = "file.metadata.size"
	ColCreatedTime   = "file.metadata.created_time"
	ColModifiedTime  = "file.metadata.modified_time"
	ColAccessedTime  = "file.metadata.accessed_time"
	ColOwner         = "file.metadata.owner"
	ColFolderPath    = "folder.folder_path"
	ColFolderName    = "folder.folder_name"
	ColFolders       = "folder.folders"
	ColHash          = "file.hash"
	ColDatestamp     = "file.datestamp"
)

// ErrorMarker 单元格计算失败时的前缀，后接路径和系统错误
const ErrorMarker = "#ERROR: "

// DatestampLayout 日期戳列的字符串格式
const DatestampLayout = "2006-01-02"

var baseColumns = []string{
	ColFilePath, ColFileName, ColFileExtension, ColSystemPath,
	ColSize, ColCreatedTime, ColModifiedTime, ColAccessedTime, ColOwner,
	ColFolderPath, ColFolderName, ColFolders,
}

var calculatedColumns = []string{ColHash, ColDatestamp}

// Row 一个文件对应的一行
type Row struct {
	FilePath      string    `json:"file_path"`
	FileName      string    `json:"file_name"`
	FileExtension string    `json:"file_extension"`
	SystemPath    string    `json:"system_path"`
	Size          int64     `json:"size"`
	CreatedTime   time.Time `json:"created_time"`
	ModifiedTime  time.Time `json:"modified_time"`
	AccessedTime  time.Time `json:"accessed_time"`
	Owner         string    `json:"owner"`
	FolderPath    string    `json:"folder_path"`
	FolderName    string    `json:"folder_name"`
	Folders       []string  `json:"folders"` // 同级子目录名

	// 仅在 Table.Calculated 为 true 时有效
	Hash      string    `json:"hash,omitempty"`
	Datestamp time.Time `json:"datestamp,omitzero"`
}

// Table 展开后的表格，行序为深度优先遍历顺序
type Table struct {
	Calculated bool
	Rows       []Row
}

// AllColumns 返回包括计算字段在内的全部列名
func AllColumns() []string {
	return Table{Calculated: true}.Columns()
}

// Len 返回行数
func (t Table) Len() int { return len(t.Rows) }

// Columns 返回列名
func (t Table) Columns() []string {
	cols := make([]string, 0, len(baseColumns)+len(calculatedColumns))
	cols = append(cols, baseColumns...)
	if t.Calculated {
		cols = append(cols, calculatedColumns...)
	}
	return cols
}

// Values 按 Columns 顺序返回第 i 行的原始值
func (t Table) Values(i int) []any {
	r := t.Rows[i]
	folders := r.Folders
	if folders == nil {
		folders = []string{}
	}
	vals := []any{
		r.FilePath, r.FileName, r.FileExtension, r.SystemPath,
		r.Size, r.CreatedTime, r.ModifiedTime, r.AccessedTime, r.Owner,
		r.FolderPath, r.FolderName, folders,
	}
	if t.Calculated {
		vals = append(vals, r.Hash, r.Datestamp)
	}
	return vals
}

// Records 返回每行的字符串形式，适合写入 CSV
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := []string{
			r.FilePath, r.FileName, r.FileExtension, r.SystemPath,
			strconv.FormatInt(r.Size, 10),
			formatTime(r.CreatedTime), formatTime(r.ModifiedTime), formatTime(r.AccessedTime),
			r.Owner,
			r.FolderPath, r.FolderName, FormatFolders(r.Folders),
		}
		if t.Calculated {
			rec = append(rec, r.Hash, r.Datestamp.Format(DatestampLayout))
		}
		out = append(out, rec)
	}
	return out
}

// FormatFolders 把目录名列表渲染为 JSON 数组
func FormatFolders(names []string) string {
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
