package xdaily

import "os"

// 默认配置值
const (
	// DefaultBufferSize 默认队列容量（条）
	DefaultBufferSize = 1024

	// DefaultFileMode 默认日志文件权限
	DefaultFileMode os.FileMode = 0640

	// maxBufferSize 队列容量上限（1M 条），防止误配置吃光内存
	maxBufferSize = 1 << 20
)

// storeConfig Store 构造配置
type storeConfig struct {
	// BufferSize 队列容量。写入压力超过 worker 落盘速度时，
	// 超出容量的记录被丢弃并计数。
	BufferSize int

	// FileMode 日志文件权限，仅允许权限位（0000~0777）
	FileMode os.FileMode

	// OnError 内部错误回调（nil 表示静默忽略）。
	// 回调不得再向同一 Store 写入，否则产生递归。
	OnError func(error)
}

// Option Store 配置选项函数
type Option func(*storeConfig)

// WithBufferSize 设置队列容量
//
// 队列满时新记录被丢弃（drop-newest）并计入 Dropped 计数。
// 默认 DefaultBufferSize，必须在 1~1048576 范围内。
func WithBufferSize(n int) Option {
	return func(c *storeConfig) {
		c.BufferSize = n
	}
}

// WithFileMode 设置日志文件权限
//
// 默认 DefaultFileMode (0640)。仅允许权限位（0000~0777）。
func WithFileMode(mode os.FileMode) Option {
	return func(c *storeConfig) {
		c.FileMode = mode
	}
}

// WithOnError 设置内部错误回调
//
// 打开、写入、删除文件的失败通过回调上报。默认为 nil（静默忽略）。
//
// 设计决策: 不使用日志库记录内部错误，避免 Store 作为日志落盘目标时
// 产生递归写入（写失败 → 打日志 → 再写失败）。回调在 worker goroutine
// 上同步执行，应保持轻量；回调 panic 被 recover 隔离。
func WithOnError(fn func(error)) Option {
	return func(c *storeConfig) {
		c.OnError = fn
	}
}
