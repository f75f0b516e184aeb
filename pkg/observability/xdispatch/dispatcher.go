package xdispatch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/hiETsang/LogKit/pkg/observability/xdaily"
	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// defaultCategory 未指定分类时的事件分类
const defaultCategory = "general"

// categoryKey 系统设施记录上的分类属性名
const categoryKey = "category"

// event 一次分发携带的事件元数据
type event struct {
	category    string
	file        string
	line        int
	function    string
	hasLocation bool
}

// EventOption 日志事件选项
type EventOption func(*event)

// WithCategory 指定事件分类。
// 空字符串等同于未指定，落为 "general"。
func WithCategory(category string) EventOption {
	return func(ev *event) {
		ev.category = category
	}
}

// WithLocation 显式指定事件的调用位置（详细模式下作为前缀输出）
func WithLocation(file string, line int, function string) EventOption {
	return func(ev *event) {
		ev.file = file
		ev.line = line
		ev.function = function
		ev.hasLocation = true
	}
}

// WithCaller 捕获当前调用位置作为事件位置。
//
// 位置在构造选项时捕获，即业务代码调用 WithCaller() 的那一行；
// 捕获失败时选项退化为空操作。
func WithCaller() EventOption {
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		return func(*event) {}
	}

	function := ""
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = filepath.Base(fn.Name())
	}
	return func(ev *event) {
		ev.file = file
		ev.line = line
		ev.function = function
		ev.hasLocation = true
	}
}

// Dispatcher 日志事件分发器。
//
// 所有运行时可调的配置都是独立的原子字段，读写均无锁；
// 出口集合（Handler、Store）在 Build 时固定。
// 实例通过 [Builder.Build] 创建，零值不可用。
type Dispatcher struct {
	handler slog.Handler
	store   *xdaily.Store

	minLevel      atomic.Int32
	fileEnabled   atomic.Bool
	verbose       atomic.Bool
	retentionDays atomic.Int32

	sinks sinkRegistry

	onError        func(error)
	errorCount     atomic.Uint64
	inErrorHandler atomic.Bool
}

// =============================================================================
// 严重级别方法
// =============================================================================

// Debug 记录调试级别事件
func (d *Dispatcher) Debug(msg string, opts ...EventOption) {
	d.dispatch(xsev.LevelDebug, msg, opts)
}

// Info 记录信息级别事件
func (d *Dispatcher) Info(msg string, opts ...EventOption) {
	d.dispatch(xsev.LevelInfo, msg, opts)
}

// Notice 记录通知级别事件
func (d *Dispatcher) Notice(msg string, opts ...EventOption) {
	d.dispatch(xsev.LevelNotice, msg, opts)
}

// Warning 记录警告级别事件
func (d *Dispatcher) Warning(msg string, opts ...EventOption) {
	d.dispatch(xsev.LevelWarning, msg, opts)
}

// Error 记录错误级别事件
func (d *Dispatcher) Error(msg string, opts ...EventOption) {
	d.dispatch(xsev.LevelError, msg, opts)
}

// Fault 记录致命级别事件
func (d *Dispatcher) Fault(msg string, opts ...EventOption) {
	d.dispatch(xsev.LevelFault, msg, opts)
}

// Log 以任意级别记录事件，非法级别直接丢弃
func (d *Dispatcher) Log(level xsev.Level, msg string, opts ...EventOption) {
	if !level.Valid() {
		return
	}
	d.dispatch(level, msg, opts)
}

// dispatch 统一分发路径。
//
// 级别过滤放在最前面：被过滤的事件在一次原子比较后返回，
// 不求值选项、不触碰任何出口。
func (d *Dispatcher) dispatch(level xsev.Level, msg string, opts []EventOption) {
	if int32(level) < d.minLevel.Load() {
		return
	}

	ev := event{category: defaultCategory}
	for _, opt := range opts {
		if opt != nil {
			opt(&ev)
		}
	}
	if ev.category == "" {
		ev.category = defaultCategory
	}

	out := msg
	if d.verbose.Load() && ev.hasLocation {
		out = fmt.Sprintf("[%s:%d %s] %s", filepath.Base(ev.file), ev.line, ev.function, msg)
	}

	// 系统设施：级别过滤由 Dispatcher 独占，这里无条件转发
	r := slog.NewRecord(time.Now(), level.SlogLevel(), out, 0)
	r.AddAttrs(slog.String(categoryKey, ev.category))
	if err := d.handler.Handle(context.Background(), r); err != nil {
		d.handleError(err)
	}

	// 文件出口：异步提交，磁盘压力不回传调用方
	if d.store != nil && d.fileEnabled.Load() {
		d.store.Write(level, ev.category, out)
	}

	// 回调出口：按注册顺序同步执行
	for _, e := range d.sinks.load() {
		e.sink.Handle(level, out, ev.category)
	}
}

// handleError 处理出口内部错误。
//
// 设计决策: CAS 递归保护下，并发期间的部分错误会跳过 onError 回调；
// errorCount 仍计入全部错误，回调定位为 best-effort 通知。
// 回调 panic 被隔离并计入错误计数，不扩散到业务调用链。
func (d *Dispatcher) handleError(err error) {
	d.errorCount.Add(1)
	if d.onError == nil {
		return
	}
	if d.inErrorHandler.CompareAndSwap(false, true) {
		defer d.inErrorHandler.Store(false)
		defer func() {
			if recover() != nil {
				d.errorCount.Add(1)
			}
		}()
		d.onError(err)
	}
}

// internalCategory 本设施自身内部错误的事件分类
const internalCategory = "logkit"

// reportStoreError 把文件出口的内部失败转发到系统设施。
//
// 失败的文件出口不能充当自己的上报通道，这里只走 slog Handler；
// Handler 在最后一跳的返回错误被忽略，失败到此为止。
func (d *Dispatcher) reportStoreError(err error) {
	r := slog.NewRecord(time.Now(), xsev.LevelError.SlogLevel(), "file sink error: "+err.Error(), 0)
	r.AddAttrs(slog.String(categoryKey, internalCategory))
	_ = d.handler.Handle(context.Background(), r)
	d.handleError(err)
}

// =============================================================================
// Sink 注册
// =============================================================================

// Register 注册一个回调 Sink，返回注销用的 Token。
// nil Sink 返回零值 Token，不产生注册。
func (d *Dispatcher) Register(sink Sink) Token {
	return d.sinks.register(sink)
}

// Unregister 注销指定 Token 的 Sink，返回是否有注销发生。
// 正在进行的分发可能仍使用旧快照，该 Sink 可能再被调用最后一次。
func (d *Dispatcher) Unregister(token Token) bool {
	return d.sinks.unregister(token)
}

// SinkCount 返回当前注册的 Sink 数量
func (d *Dispatcher) SinkCount() int {
	return d.sinks.size()
}

// =============================================================================
// 运行时配置
// =============================================================================

// MinLevel 返回当前最小级别
func (d *Dispatcher) MinLevel() xsev.Level {
	return xsev.Level(d.minLevel.Load())
}

// SetMinLevel 调整最小级别，非法级别被忽略。
// 即时对后续事件生效，不影响已在分发中的事件。
func (d *Dispatcher) SetMinLevel(level xsev.Level) {
	if !level.Valid() {
		return
	}
	d.minLevel.Store(int32(level))
}

// FileEnabled 返回文件出口是否启用
func (d *Dispatcher) FileEnabled() bool {
	return d.fileEnabled.Load()
}

// SetFileEnabled 开关文件出口。
// 未配置 Store 的 Dispatcher 开启后仍不产生文件写入。
func (d *Dispatcher) SetFileEnabled(enabled bool) {
	d.fileEnabled.Store(enabled)
}

// Verbose 返回详细模式是否启用
func (d *Dispatcher) Verbose() bool {
	return d.verbose.Load()
}

// SetVerbose 开关详细模式（调用位置前缀）
func (d *Dispatcher) SetVerbose(enabled bool) {
	d.verbose.Store(enabled)
}

// RetentionDays 返回当前保留天数
func (d *Dispatcher) RetentionDays() int {
	return int(d.retentionDays.Load())
}

// SetRetentionDays 调整保留天数，非正值被忽略
func (d *Dispatcher) SetRetentionDays(days int) {
	if days <= 0 {
		return
	}
	d.retentionDays.Store(int32(days))
}

// ErrorCount 返回出口内部错误的累计次数
func (d *Dispatcher) ErrorCount() uint64 {
	return d.errorCount.Load()
}

// Store 返回文件出口的 Store，未配置时为 nil
func (d *Dispatcher) Store() *xdaily.Store {
	return d.store
}

// =============================================================================
// 维护操作
// =============================================================================

// CleanupNow 立即按当前保留天数执行一次过期清理。
// 未配置 Store 时为无害的空操作。
func (d *Dispatcher) CleanupNow(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	days := d.RetentionDays()
	if days <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRetention, days)
	}
	return d.store.CleanupExpired(ctx, days)
}

// Sync 阻塞等待文件出口排空已提交的记录。
// 未配置 Store 时立即返回。
func (d *Dispatcher) Sync(ctx context.Context) error {
	if d.store == nil {
		return nil
	}
	return d.store.Sync(ctx)
}
