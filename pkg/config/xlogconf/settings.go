package xlogconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/hiETsang/LogKit/pkg/observability/xdispatch"
	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// Format 配置文件格式
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Settings 日志设施的可热更配置。
//
// 布尔键使用指针类型区分"未配置"与"显式 false"：
// 缺失的键在 Apply 时保持 Dispatcher 现状不变。
type Settings struct {
	MinLevel      string `koanf:"min_level"`
	Verbose       *bool  `koanf:"verbose"`
	FileSink      *bool  `koanf:"file_sink"`
	RetentionDays int    `koanf:"retention_days"`
}

// Load 从文件加载配置。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (Settings, error) {
	if path == "" {
		return Settings{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置，需要显式指定格式。
// 空数据返回零值 Settings（全部"未配置"）。
func LoadBytes(data []byte, format Format) (Settings, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var s Settings
	if len(data) == 0 {
		return s, nil
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return s, nil
}

// Validate 校验配置值，不触碰任何 Dispatcher。
func (s Settings) Validate() error {
	if s.MinLevel != "" {
		if _, err := xsev.ParseLevel(s.MinLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
	}
	if s.RetentionDays < 0 {
		return fmt.Errorf("%w: retention_days must not be negative, got %d",
			ErrInvalidSettings, s.RetentionDays)
	}
	return nil
}

// Apply 把配置应用到运行中的 Dispatcher。
//
// 先整体校验再逐项应用，校验失败时 Dispatcher 保持原状；
// 未配置的键（零值/nil）跳过，不覆盖现有设置。
func Apply(d *xdispatch.Dispatcher, s Settings) error {
	if d == nil {
		return ErrNilDispatcher
	}
	if err := s.Validate(); err != nil {
		return err
	}

	if s.MinLevel != "" {
		level, _ := xsev.ParseLevel(s.MinLevel)
		d.SetMinLevel(level)
	}
	if s.Verbose != nil {
		d.SetVerbose(*s.Verbose)
	}
	if s.FileSink != nil {
		d.SetFileEnabled(*s.FileSink)
	}
	if s.RetentionDays > 0 {
		d.SetRetentionDays(s.RetentionDays)
	}
	return nil
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}
