package xdispatch

import "errors"

// 包级错误定义
var (
	// ErrInvalidFormat 输出格式不是 text 或 json
	ErrInvalidFormat = errors.New("xdispatch: invalid format")

	// ErrConflictingStore 同时指定了外部 Store 和文件目录
	ErrConflictingStore = errors.New("xdispatch: SetStore and SetFileDirectory are mutually exclusive")

	// ErrInvalidRetention 保留天数必须为正
	ErrInvalidRetention = errors.New("xdispatch: retention days must be positive")
)
