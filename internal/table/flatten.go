package table

import (
	"log/slog"

	"filefolder/internal/fs"
)

// Flatten 对已构建的目录树做深度优先遍历，每个文件产生一行。
// 先输出目录自身的文件，再依次进入已发现的子目录。
//
// includeCalculated 为 false 时不会读取文件内容 (不计算哈希)。
// 某个文件的哈希失败不会中断导出，该单元格以 ErrorMarker 开头。
func Flatten(root *fs.Folder, includeCalculated bool) Table {
	return FlattenWithLogger(root, includeCalculated, slog.Default())
}

// FlattenWithLogger 同 Flatten，使用指定的 logger 记录单元格失败
func FlattenWithLogger(root *fs.Folder, includeCalculated bool, logger *slog.Logger) Table {
	t := Table{Calculated: includeCalculated}

	// Walk 的回调从不返回错误
	_ = root.Walk(func(folder *fs.Folder) error {
		siblings := folderNames(folder)
		for _, f := range folder.Files() {
			t.Rows = append(t.Rows, buildRow(folder, f, siblings, includeCalculated, logger))
		}
		return nil
	})

	logger.Debug("目录树展开完成", "root", root.SystemPath(), "rows", t.Len(), "calculated", includeCalculated)
	return t
}

func buildRow(folder *fs.Folder, f *fs.File, siblings []string, calculated bool, logger *slog.Logger) Row {
	md := f.Metadata()
	r := Row{
		FilePath:      f.Path(),
		FileName:      f.Name(),
		FileExtension: f.Extension(),
		SystemPath:    f.SystemPath(),
		Size:          md.Size,
		CreatedTime:   md.CreatedTime,
		ModifiedTime:  md.ModifiedTime,
		AccessedTime:  md.AccessedTime,
		Owner:         md.Owner,
		FolderPath:    folder.Path(),
		FolderName:    folder.Name(),
		Folders:       siblings,
	}
	if !calculated {
		return r
	}

	hash, err := f.Hash()
	if err != nil {
		logger.Warn("计算哈希失败，继续导出", "path", f.SystemPath(), "err", err)
		hash = ErrorMarker + err.Error()
	}
	r.Hash = hash
	r.Datestamp = f.Datestamp()
	return r
}

func folderNames(folder *fs.Folder) []string {
	children := folder.Folders()
	names := make([]string, 0, len(children))
	for _, c := range children {
		names = append(names, c.Name())
	}
	return names
}
