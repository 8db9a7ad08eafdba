package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filefolder/internal/table"

	_ "github.com/marcboeker/go-duckdb"
)

// DuckDB 把表格写入本地 DuckDB 文件，便于用 SQL 分析
type DuckDB struct {
	conn *sql.DB
}

// OpenDuckDB 打开 (或创建) DuckDB 数据库文件
func OpenDuckDB(path string) (*DuckDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("创建目录失败: %w", err)
	}
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("打开 DuckDB 失败: %w", err)
	}
	return &DuckDB{conn: conn}, nil
}

// Close 关闭连接
func (d *DuckDB) Close() error {
	return d.conn.Close()
}

// WriteTable 创建 (如不存在) 名为 name 的表，并在一个事务里写入所有行。
// 表结构总是包含计算字段列，未计算时为 NULL；每行附带 scan_id，
// 多次扫描可以写入同一张表。
func (d *DuckDB) WriteTable(ctx context.Context, name, scanID string, t table.Table) (err error) {
	if _, err := d.conn.ExecContext(ctx, createTableSQL(name)); err != nil {
		return fmt.Errorf("create table %s failed: %w", name, err)
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// 出错时回滚
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSQL(name, t.Columns()))
	if err != nil {
		return fmt.Errorf("prepare insert failed: %w", err)
	}
	defer stmt.Close()

	for i := range t.Rows {
		params := append([]any{scanID}, duckValues(t, i)...)
		if _, err = stmt.ExecContext(ctx, params...); err != nil {
			return fmt.Errorf("insert %s failed: %w", t.Rows[i].SystemPath, err)
		}
	}

	err = tx.Commit()
	return err
}

// Count 返回某次扫描写入的行数
func (d *DuckDB) Count(ctx context.Context, name, scanID string) (int, error) {
	var n int
	q := "SELECT COUNT(*) FROM " + quoteIdent(name) + " WHERE scan_id = ?"
	if err := d.conn.QueryRowContext(ctx, q, scanID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// duckValues 把 folder.folders 渲染为 JSON 字符串，其余值原样传给驱动
func duckValues(t table.Table, i int) []any {
	vals := t.Values(i)
	for j, col := range t.Columns() {
		if col == table.ColFolders {
			vals[j] = table.FormatFolders(t.Rows[i].Folders)
		}
	}
	return vals
}

func columnType(col string) string {
	switch col {
	case table.ColSize:
		return "BIGINT"
	case table.ColCreatedTime, table.ColModifiedTime, table.ColAccessedTime:
		return "TIMESTAMP"
	case table.ColDatestamp:
		return "DATE"
	default:
		return "VARCHAR"
	}
}

func createTableSQL(name string) string {
	defs := []string{"scan_id VARCHAR"}
	for _, c := range table.AllColumns() {
		defs = append(defs, quoteIdent(c)+" "+columnType(c))
	}
	return "CREATE TABLE IF NOT EXISTS " + quoteIdent(name) + " (" + strings.Join(defs, ", ") + ")"
}

func insertSQL(name string, cols []string) string {
	quoted := []string{"scan_id"}
	for _, c := range cols {
		quoted = append(quoted, quoteIdent(c))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(quoted)), ", ")
	return "INSERT INTO " + quoteIdent(name) + " (" + strings.Join(quoted, ", ") + ") VALUES (" + marks + ")"
}

// quoteIdent 列名中含有 "."，必须加双引号
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
