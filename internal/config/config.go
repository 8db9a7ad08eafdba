package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config 对应 config.yaml 的根结构
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Export ExportConfig `yaml:"export"`
	System SystemConfig `yaml:"system"`
}

// ScanConfig 扫描相关配置
type ScanConfig struct {
	Root      string `yaml:"root"`
	Recursive bool   `yaml:"recursive"`
	// 是否计算哈希和日期戳 (需要读取全部文件内容)
	IncludeCalculatedFields bool `yaml:"include_calculated_fields"`
	// 未配置时默认为 true，用指针区分"未配置"和"false"
	FollowSymlinks *bool `yaml:"follow_symlinks"`
}

// ExportConfig 导出目标，留空表示不导出到该目标
type ExportConfig struct {
	// 以 .zst 结尾时压缩
	CSVPath     string `yaml:"csv_path"`
	DuckDBPath  string `yaml:"duckdb_path"`
	DuckDBTable string `yaml:"duckdb_table"`
}

// SystemConfig 系统配置
type SystemConfig struct {
	// 快照数据库 (bbolt)，留空则不保存快照
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// FollowsSymlinks 返回是否跟随符号链接
func (s ScanConfig) FollowsSymlinks() bool {
	return s.FollowSymlinks == nil || *s.FollowSymlinks
}

// LoadConfig 读取并解析配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析 YAML 格式错误: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Scan.Root == "" {
		return errors.New("缺少扫描目录 (scan.root)")
	}
	root, err := filepath.Abs(c.Scan.Root)
	if err != nil {
		return fmt.Errorf("无效的扫描目录 (scan.root): %w", err)
	}
	c.Scan.Root = root

	// 设置默认表名
	if c.Export.DuckDBTable == "" {
		c.Export.DuckDBTable = "files"
	}

	switch c.System.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("未知的日志等级: %s", c.System.LogLevel)
	}
	if c.System.LogLevel == "" {
		c.System.LogLevel = "info"
	}
	return nil
}
