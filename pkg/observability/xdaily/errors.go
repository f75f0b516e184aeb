package xdaily

import "errors"

// 构造与运行期错误
var (
	// ErrEmptyDirectory 日志目录为空
	ErrEmptyDirectory = errors.New("xdaily: directory is required")

	// ErrInvalidBufferSize BufferSize 值无效（必须在 1~1048576 范围内）
	ErrInvalidBufferSize = errors.New("xdaily: invalid BufferSize")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xdaily: invalid FileMode")

	// ErrInvalidRetention 保留天数无效（必须 > 0）
	ErrInvalidRetention = errors.New("xdaily: invalid retention days")

	// ErrClosed 存储已关闭
	ErrClosed = errors.New("xdaily: store is closed")
)
