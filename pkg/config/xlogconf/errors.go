package xlogconf

import "errors"

// 配置加载和应用相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xlogconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xlogconf: unsupported config format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("xlogconf: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("xlogconf: failed to parse config")

	// ErrInvalidSettings 表示配置值非法。
	ErrInvalidSettings = errors.New("xlogconf: invalid settings")

	// ErrNilDispatcher 表示应用目标为 nil。
	ErrNilDispatcher = errors.New("xlogconf: nil dispatcher")
)
