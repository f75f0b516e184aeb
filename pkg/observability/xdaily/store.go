package xdaily

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/hiETsang/LogKit/pkg/observability/xsev"
	"github.com/hiETsang/LogKit/pkg/util/xfile"
)

// record 一条待落盘的日志记录。
// barrier 非 nil 时表示这是 Sync 注入的同步屏障，worker 收到后只关闭
// channel 而不落盘。
type record struct {
	level    xsev.Level
	category string
	message  string
	barrier  chan struct{}
}

// Store 按天分片的只追加日志存储。
//
// 所有写入经由带缓冲的队列交给唯一的后台 worker 串行落盘；
// 维护类操作（清理、列举、读取、删除）在调用方 goroutine 上同步执行。
type Store struct {
	dir      string
	fileMode os.FileMode
	queue    chan record
	done     chan struct{}

	closed  atomic.Bool
	written atomic.Uint64
	dropped atomic.Uint64

	onError func(error)

	// 可注入的时钟（nil 时使用 time.Now），仅用于测试
	nowFn func() time.Time

	metrics storeMetrics
}

// New 创建 Store 并启动后台 worker。
//
// 目录（含父级）以 0750 权限幂等创建；相对路径会被解析为绝对路径，
// 之后所有按文件名的操作都被约束在该目录内。
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, ErrEmptyDirectory
	}

	cfg := storeConfig{
		BufferSize: DefaultBufferSize,
		FileMode:   DefaultFileMode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.BufferSize < 1 || cfg.BufferSize > maxBufferSize {
		return nil, fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidBufferSize, cfg.BufferSize, maxBufferSize)
	}
	if cfg.FileMode&^os.FileMode(0o777) != 0 {
		return nil, fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.FileMode)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("xdaily: resolve directory: %w", err)
	}
	if err := xfile.EnsureDir(absDir); err != nil {
		return nil, err
	}

	s := &Store{
		dir:      absDir,
		fileMode: cfg.FileMode,
		queue:    make(chan record, cfg.BufferSize),
		done:     make(chan struct{}),
		onError:  cfg.OnError,
		metrics:  newStoreMetrics(),
	}

	go s.run()
	return s, nil
}

// Dir 返回日志目录的绝对路径。
func (s *Store) Dir() string {
	return s.dir
}

// Write 提交一条记录等待落盘。
//
// 非阻塞：队列满或 Store 已关闭时该记录被丢弃并计数，调用方不会
// 因磁盘 I/O 等待。category 为空时落为 "general"。
//
// 注意：文件系统挂起会使 worker 停滞，后续记录在队列填满后开始丢弃；
// 本方法自身仍然立即返回。
func (s *Store) Write(level xsev.Level, category, message string) {
	if s.closed.Load() {
		s.drop()
		return
	}
	if category == "" {
		category = defaultCategory
	}

	// Close 与 Write 并发时 channel 可能已关闭，recover 兜底计入丢弃
	defer func() {
		if recover() != nil {
			s.drop()
		}
	}()

	select {
	case s.queue <- record{level: level, category: category, message: message}:
	default:
		s.drop()
	}
}

// defaultCategory 未指定分类时的落盘值。
const defaultCategory = "general"

// Sync 阻塞等待此前提交的所有记录落盘完成。
//
// 通过向队列注入屏障记录实现：屏障之前入队的记录都已被 worker 处理。
// 仅用于需要确定性的场景（测试、进程退出前），热路径不应调用。
func (s *Store) Sync(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}

	barrier := make(chan struct{})

	sent := func() (ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		select {
		case s.queue <- record{barrier: barrier}:
			return true
		case <-ctx.Done():
			return false
		}
	}()
	if !sent {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrClosed
	}

	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 停止接收新记录，排空队列后停止 worker。
//
// 排空受 ctx 约束：ctx 先到期则放弃等待（队列中未落盘的记录会丢失）。
// 重复调用返回 [ErrClosed]。
func (s *Store) Close(ctx context.Context) error {
	if s.closed.Swap(true) {
		return ErrClosed
	}

	close(s.queue)

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Written 返回成功落盘的行数。
func (s *Store) Written() uint64 {
	return s.written.Load()
}

// Dropped 返回被丢弃的记录数（队列满、已关闭、落盘失败）。
func (s *Store) Dropped() uint64 {
	return s.dropped.Load()
}

// drop 计入一次丢弃。
func (s *Store) drop() {
	s.dropped.Add(1)
	s.metrics.addDropped(1)
}

// reportError 通过回调上报内部错误。
//
// 设计决策: 回调 panic 被 recover 隔离，防止错误通知反向中断 worker。
func (s *Store) reportError(err error) {
	if err != nil && s.onError != nil {
		defer func() { recover() }() //nolint:errcheck // recover 返回值无需检查
		s.onError(err)
	}
}

// now 返回当前时间，测试可通过 nowFn 注入固定时钟。
func (s *Store) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}
