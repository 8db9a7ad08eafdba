package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"filefolder/internal/table"

	"go.etcd.io/bbolt"
)

const (
	// BucketName 是数据库中的"表名"
	BucketName = "FileSnapshots"
)

var errNotFound = errors.New("not found")

// DB 封装 BoltDB 实例
type DB struct {
	conn *bbolt.DB
}

// NewBoltDB 初始化并打开数据库
func NewBoltDB(dbPath string) (*DB, error) {
	// 打开数据库，如果文件不存在则创建
	// Timeout 选项防止两个进程同时打开同一个数据库导致死锁
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("打开 BoltDB 失败: %w", err)
	}

	// 确保 Bucket 存在
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("创建 Bucket 失败: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	return d.conn.Close()
}

// Get 获取单个文件的快照，没有记录时返回 (nil, nil)
func (d *DB) Get(systemPath string) (*FileRecord, error) {
	var rec FileRecord
	err := d.conn.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(BucketName)).Get([]byte(systemPath))
		if v == nil {
			return errNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put 保存或更新单个文件的快照
func (d *DB) Put(rec *FileRecord) error {
	rec.ScannedAt = time.Now().UnixNano()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	return d.conn.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BucketName)).Put([]byte(rec.SystemPath), data)
	})
}

// PutTable 在一个事务中写入整张表，并删除 root 目录下
// 不属于本次扫描的旧记录，使快照与当前目录树一致
func (d *DB) PutTable(scanID, root string, t table.Table) error {
	now := time.Now().UnixNano()

	return d.conn.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))

		current := make(map[string]struct{}, len(t.Rows))
		for _, row := range t.Rows {
			data, err := json.Marshal(&FileRecord{Row: row, ScanID: scanID, ScannedAt: now})
			if err != nil {
				return fmt.Errorf("序列化失败 key=%s: %w", row.SystemPath, err)
			}
			if err := b.Put([]byte(row.SystemPath), data); err != nil {
				return err
			}
			current[row.SystemPath] = struct{}{}
		}

		// 遍历期间不能删除，先收集
		var stale [][]byte
		prefix := []byte(strings.TrimSuffix(root, string(filepath.Separator)) + string(filepath.Separator))
		c := b.Cursor()
		for k, _ := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, _ = c.Next() {
			if _, ok := current[string(k)]; !ok {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 删除文件的快照记录
func (d *DB) Delete(systemPath string) error {
	return d.conn.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BucketName)).Delete([]byte(systemPath))
	})
}

// ListAll 获取所有快照
func (d *DB) ListAll() (map[string]*FileRecord, error) {
	result := make(map[string]*FileRecord)

	err := d.conn.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))

		return b.ForEach(func(k, v []byte) error {
			var rec FileRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("解析数据失败 key=%s: %w", string(k), err)
			}
			result[string(k)] = &rec
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
