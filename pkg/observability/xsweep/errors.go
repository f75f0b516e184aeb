package xsweep

import "errors"

// 包级错误定义
var (
	// ErrNilStore 表示未提供日志存储
	ErrNilStore = errors.New("xsweep: nil store")

	// ErrNilSource 表示未提供保留天数来源
	ErrNilSource = errors.New("xsweep: nil retention source")

	// ErrInvalidSchedule 表示 cron 表达式非法
	ErrInvalidSchedule = errors.New("xsweep: invalid schedule")

	// ErrInvalidRetention 表示保留天数非正
	ErrInvalidRetention = errors.New("xsweep: retention days must be positive")
)
