package fs

import (
	"log/slog"
	"os"
	"time"
)

// 元数据字段名，顺序固定，导出表格时按此顺序展开为 file.metadata.* 列
const (
	KeySize         = "size"
	KeyCreatedTime  = "created_time"
	KeyModifiedTime = "modified_time"
	KeyAccessedTime = "accessed_time"
	KeyOwner        = "owner"
)

var metadataKeys = []string{KeySize, KeyCreatedTime, KeyModifiedTime, KeyAccessedTime, KeyOwner}

// Metadata 文件的元数据，构造时一次性读取
type Metadata struct {
	Size         int64     `json:"size"`
	CreatedTime  time.Time `json:"created_time"`
	ModifiedTime time.Time `json:"modified_time"`
	AccessedTime time.Time `json:"accessed_time"`
	Owner        string    `json:"owner"`
}

// MetadataKeys 返回元数据字段名 (固定顺序)
func MetadataKeys() []string {
	keys := make([]string, len(metadataKeys))
	copy(keys, metadataKeys)
	return keys
}

// Map 以字段名为键返回元数据
func (m Metadata) Map() map[string]any {
	return map[string]any{
		KeySize:         m.Size,
		KeyCreatedTime:  m.CreatedTime,
		KeyModifiedTime: m.ModifiedTime,
		KeyAccessedTime: m.AccessedTime,
		KeyOwner:        m.Owner,
	}
}

// fileTimes 由各平台的 statTimes 填充
type fileTimes struct {
	created  time.Time
	modified time.Time
	accessed time.Time
}

func readMetadata(path string, info os.FileInfo, owner OwnerResolver, logger *slog.Logger) Metadata {
	times := statTimes(path, info)
	return Metadata{
		Size:         info.Size(),
		CreatedTime:  times.created,
		ModifiedTime: times.modified,
		AccessedTime: times.accessed,
		Owner:        resolveOwner(owner, path, info, logger),
	}
}
