package database

import (
	"time"

	"filefolder/internal/table"
)

// FileRecord 一个文件在某次扫描时的快照
// 存入数据库时会序列化为 JSON，键为文件的绝对路径
type FileRecord struct {
	table.Row

	// 产生这条记录的扫描 ID
	ScanID string `json:"scan_id"`

	// 写入时间 (Unix Nano)
	ScannedAt int64 `json:"scanned_at"`
}

// ScannedAtAsTime 辅助方法：转为 Go Time 对象
func (r *FileRecord) ScannedAtAsTime() time.Time {
	return time.Unix(0, r.ScannedAt)
}
