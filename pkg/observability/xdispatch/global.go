package xdispatch

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// =============================================================================
// 全局 Dispatcher
//
// 定位：脚手架/小工具等简单场景。
// 服务端推荐依赖注入（显式持有 Dispatcher）。
// =============================================================================

// globalDispatcher 全局 Dispatcher 实例（并发安全）
var globalDispatcher atomic.Pointer[Dispatcher]

// globalMu 保护 globalOnce 及其 Do 执行（也用于 ResetDefault）
var globalMu sync.Mutex

// globalOnce 确保默认 Dispatcher 只初始化一次
var globalOnce sync.Once

// defaultDispatcher 创建默认 Dispatcher（惰性初始化）
//
// 设计决策: 在持锁状态下执行 once.Do，确保 ResetDefault（重置 globalOnce）
// 与 once.Do 之间不会发生并发竞争。初始化后 Default() 走 atomic.Load
// 快速路径，不进入此函数。
func defaultDispatcher() *Dispatcher {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalOnce.Do(func() {
		// 默认配置：stderr text 输出，Info 级别，无文件出口
		d, _, err := New().Build()
		if err != nil {
			// 默认参数不应失败；如果失败则降级为最小可用实例，
			// 避免库代码 panic 终止宿主进程
			fmt.Fprintf(os.Stderr, "xdispatch: failed to build default dispatcher: %v, using fallback\n", err)
			d = &Dispatcher{
				handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
			}
			d.minLevel.Store(int32(xsev.LevelInfo))
			d.retentionDays.Store(int32(DefaultRetentionDays))
		}
		globalDispatcher.Store(d)
	})
	return globalDispatcher.Load()
}

// Default 返回全局默认 Dispatcher
//
// 懒初始化：首次调用时创建默认实例（stderr，Info 级别，text 格式）。
// 并发安全：使用 sync.Once 和 atomic.Pointer。
func Default() *Dispatcher {
	if d := globalDispatcher.Load(); d != nil {
		return d
	}
	return defaultDispatcher()
}

// SetDefault 替换全局默认 Dispatcher
//
// 传入 nil 时操作被忽略。要重置为默认实例，请使用 ResetDefault()。
func SetDefault(d *Dispatcher) {
	if d == nil {
		return
	}
	globalDispatcher.Store(d)
}

// ResetDefault 重置全局 Dispatcher 为未初始化状态（仅用于测试）
//
// 调用后，下次 Default() 会重新初始化默认实例。
func ResetDefault() {
	globalMu.Lock()
	globalDispatcher.Store(nil)
	globalOnce = sync.Once{}
	globalMu.Unlock()
}

// =============================================================================
// 便利函数：按严重级别的最小集
// =============================================================================

// Debug 使用全局 Dispatcher 记录调试级别事件
func Debug(msg string, opts ...EventOption) {
	Default().Debug(msg, opts...)
}

// Info 使用全局 Dispatcher 记录信息级别事件
func Info(msg string, opts ...EventOption) {
	Default().Info(msg, opts...)
}

// Notice 使用全局 Dispatcher 记录通知级别事件
func Notice(msg string, opts ...EventOption) {
	Default().Notice(msg, opts...)
}

// Warning 使用全局 Dispatcher 记录警告级别事件
func Warning(msg string, opts ...EventOption) {
	Default().Warning(msg, opts...)
}

// Error 使用全局 Dispatcher 记录错误级别事件
func Error(msg string, opts ...EventOption) {
	Default().Error(msg, opts...)
}

// Fault 使用全局 Dispatcher 记录致命级别事件
func Fault(msg string, opts ...EventOption) {
	Default().Fault(msg, opts...)
}
