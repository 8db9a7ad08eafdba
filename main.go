package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filefolder/internal/config"
	"filefolder/internal/database"
	"filefolder/internal/export"
	"filefolder/internal/fs"
	"filefolder/internal/table"
	"filefolder/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "配置加载失败: "+err.Error())
		os.Exit(1)
	}

	// 2. 初始化日志系统
	logFile, err := logger.Setup(cfg.System.LogLevel, cfg.System.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "日志初始化失败: "+err.Error())
		os.Exit(1)
	}
	defer logFile.Close()

	slog.Info("filefolder 启动",
		"root", cfg.Scan.Root,
		"recursive", cfg.Scan.Recursive,
		"include_calculated_fields", cfg.Scan.IncludeCalculatedFields,
		"log_level", cfg.System.LogLevel,
	)

	// 3. 收到信号时取消导出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("运行失败", "err", err)
		stop()
		logFile.Close()
		os.Exit(1)
	}
}

// run 扫描目录树、展开为表格，然后写入所有已配置的导出目标
func run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	scanID := uuid.NewString()

	// 扫描是单线程的
	folder, err := fs.NewFolder(cfg.Scan.Root, cfg.Scan.Recursive,
		fs.WithFollowSymlinks(cfg.Scan.FollowsSymlinks()),
		fs.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	tbl := table.Flatten(folder, cfg.Scan.IncludeCalculatedFields)
	slog.Info("扫描完成", "scan_id", scanID, "rows", tbl.Len(), "elapsed", time.Since(start))

	// 表格构建完成后不再修改，各导出目标可以并行写入
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Export.CSVPath != "" {
		g.Go(func() error {
			if err := export.WriteCSVFile(cfg.Export.CSVPath, tbl); err != nil {
				return fmt.Errorf("export csv failed: %w", err)
			}
			slog.Info("CSV 已导出", "path", cfg.Export.CSVPath)
			return nil
		})
	}

	if cfg.Export.DuckDBPath != "" {
		g.Go(func() error {
			db, err := export.OpenDuckDB(cfg.Export.DuckDBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.WriteTable(gctx, cfg.Export.DuckDBTable, scanID, tbl); err != nil {
				return fmt.Errorf("export duckdb failed: %w", err)
			}
			slog.Info("DuckDB 已导出", "path", cfg.Export.DuckDBPath, "table", cfg.Export.DuckDBTable)
			return nil
		})
	}

	if cfg.System.DBPath != "" {
		g.Go(func() error {
			db, err := database.NewBoltDB(cfg.System.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.PutTable(scanID, folder.SystemPath(), tbl); err != nil {
				return fmt.Errorf("save snapshot failed: %w", err)
			}
			slog.Info("快照已保存", "path", cfg.System.DBPath)
			return nil
		})
	}

	return g.Wait()
}
