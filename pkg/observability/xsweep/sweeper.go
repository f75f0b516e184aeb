package xsweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/hiETsang/LogKit/pkg/observability/xdaily"
)

// DefaultSchedule 默认清理时刻：每天 03:00（低峰期）
const DefaultSchedule = "0 3 * * *"

// RetentionSource 保留天数来源。
// 每次清理触发时读取，运行时变更即时生效。
// xdispatch.Dispatcher 实现了此接口。
type RetentionSource interface {
	RetentionDays() int
}

// RetentionDaysFunc 函数适配器，把普通函数转为 RetentionSource
type RetentionDaysFunc func() int

// RetentionDays 实现 RetentionSource 接口
func (f RetentionDaysFunc) RetentionDays() int {
	return f()
}

// 编译时接口检查
var _ RetentionSource = (RetentionDaysFunc)(nil)

// Option 配置选项
type Option func(*sweeperConfig)

type sweeperConfig struct {
	schedule string
	onError  func(error)
}

// WithSchedule 设置 cron 表达式（标准五段格式）
func WithSchedule(spec string) Option {
	return func(c *sweeperConfig) {
		c.schedule = spec
	}
}

// WithOnError 设置清理失败的错误回调。
// 回调在 cron 的调度 goroutine 上执行，应保持轻量。
func WithOnError(fn func(error)) Option {
	return func(c *sweeperConfig) {
		c.onError = fn
	}
}

// Sweeper 日志保留清理调度器。
// 实例通过 [New] 创建，零值不可用。
type Sweeper struct {
	store   *xdaily.Store
	src     RetentionSource
	cron    *cron.Cron
	onError func(error)

	mu      sync.Mutex
	running bool
}

// New 创建 Sweeper，cron 表达式在此即校验。
// 创建后处于停止状态，需调用 Start 开始调度。
func New(store *xdaily.Store, src RetentionSource, opts ...Option) (*Sweeper, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if src == nil {
		return nil, ErrNilSource
	}

	cfg := sweeperConfig{schedule: DefaultSchedule}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Sweeper{
		store:   store,
		src:     src,
		cron:    cron.New(),
		onError: cfg.onError,
	}

	if _, err := s.cron.AddFunc(cfg.schedule, s.sweep); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, cfg.schedule, err)
	}
	return s, nil
}

// Start 开始调度，幂等。
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
}

// Stop 停止调度并等待进行中的清理结束，幂等。
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	<-s.cron.Stop().Done()
}

// RunOnce 立即执行一次清理，不依赖调度状态。
// 保留天数非正时返回 [ErrInvalidRetention]。
func (s *Sweeper) RunOnce(ctx context.Context) error {
	days := s.src.RetentionDays()
	if days <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRetention, days)
	}
	return s.store.CleanupExpired(ctx, days)
}

// sweep cron 触发的清理入口，失败走错误回调
func (s *Sweeper) sweep() {
	if err := s.RunOnce(context.Background()); err != nil && s.onError != nil {
		s.onError(err)
	}
}
