package xsev

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志严重级别，按整数 rank 全序排列。
type Level int

// 六个级别常量，rank 严格递增。
const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarning
	LevelError
	LevelFault
)

// 编译时接口检查
var (
	_ fmt.Stringer = LevelInfo
)

// String 返回级别的大写规范名。
//
// 未知 rank 返回 "LEVEL(<n>)"，不会 panic。
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelNotice:
		return "NOTICE"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFault:
		return "FAULT"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Marker 返回级别的单字符标记，用于文件行的人眼快速识别。
//
// 标记是文件格式契约的一部分，一经发布不可变更。
// 未知 rank 返回 "•"。
func (l Level) Marker() string {
	switch l {
	case LevelDebug:
		return "🔍"
	case LevelInfo:
		return "ℹ️"
	case LevelNotice:
		return "📋"
	case LevelWarning:
		return "⚠️"
	case LevelError:
		return "❌"
	case LevelFault:
		return "🔥"
	default:
		return "•"
	}
}

// Valid 判断 rank 是否落在已定义的六个级别内。
func (l Level) Valid() bool {
	return l >= LevelDebug && l <= LevelFault
}

// SlogLevel 返回级别在 log/slog 数值空间中的映射。
//
// slog 没有 NOTICE 与 CRITICAL 级别：notice 映射为 Info+2，
// fault 映射为 Error+4。映射保持严格全序，保证系统日志设施
// 逐级过滤的语义与本包一致。
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelNotice:
		return slog.LevelInfo + 2
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelFault:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口，支持配置序列化。
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口，支持从配置文件反序列化。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为日志级别。
// 支持 debug/info/notice/warn/warning/error/fault（大小写不敏感），
// 输入会自动 TrimSpace。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "fault":
		return LevelFault, nil
	default:
		return LevelInfo, fmt.Errorf("xsev: unknown level %q", s)
	}
}

// Levels 返回全部六个级别，按 rank 递增排列。
// 便于表驱动测试和 CLI 帮助信息生成。
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelNotice, LevelWarning, LevelError, LevelFault}
}
