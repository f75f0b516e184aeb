package xdispatch

import (
	"sync"
	"sync/atomic"

	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// Sink 日志事件回调出口。
//
// Handle 在产生日志的 goroutine 上同步执行，应保持轻量；耗时处理
// 建议把事件投到自己的 channel 异步消费。Handle 内的 panic 属于
// Sink 自身的缺陷，Dispatcher 不做隔离。
type Sink interface {
	// Handle 处理一条已通过级别过滤的日志事件
	Handle(level xsev.Level, message, category string)
}

// SinkFunc 函数适配器，把普通函数转为 Sink
type SinkFunc func(level xsev.Level, message, category string)

// Handle 实现 Sink 接口
func (f SinkFunc) Handle(level xsev.Level, message, category string) {
	f(level, message, category)
}

// 编译时接口检查
var _ Sink = (SinkFunc)(nil)

// Token 标识一次 Sink 注册，用于后续注销。
// 零值不对应任何注册。
type Token uint64

// sinkEntry 一条注册记录，token 与 sink 成对出现
type sinkEntry struct {
	token Token
	sink  Sink
}

// sinkRegistry 回调 Sink 注册表。
//
// 读多写少：分发热路径只做一次 atomic.Value 读取拿到不可变快照；
// 注册/注销在互斥锁下整体复制后替换快照（copy-on-write）。
// 正在进行的分发继续使用旧快照，注销的 Sink 可能再被调用最后一次。
type sinkRegistry struct {
	mu       sync.Mutex
	next     atomic.Uint64
	snapshot atomic.Value // []sinkEntry，保持注册顺序
}

// register 追加一个 Sink，返回注销用的 Token。
// sink 为 nil 时返回零值 Token，不产生注册。
func (r *sinkRegistry) register(sink Sink) Token {
	if sink == nil {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token := Token(r.next.Add(1))
	old := r.load()
	entries := make([]sinkEntry, len(old)+1)
	copy(entries, old)
	entries[len(old)] = sinkEntry{token: token, sink: sink}
	r.snapshot.Store(entries)
	return token
}

// unregister 按 Token 移除注册，返回是否有移除发生。
// 未知或已注销的 Token 是无害的空操作。
func (r *sinkRegistry) unregister(token Token) bool {
	if token == 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.load()
	for i, e := range old {
		if e.token != token {
			continue
		}
		entries := make([]sinkEntry, 0, len(old)-1)
		entries = append(entries, old[:i]...)
		entries = append(entries, old[i+1:]...)
		r.snapshot.Store(entries)
		return true
	}
	return false
}

// load 返回当前快照，调用方只读不改
func (r *sinkRegistry) load() []sinkEntry {
	entries, _ := r.snapshot.Load().([]sinkEntry)
	return entries
}

// size 返回当前注册数量
func (r *sinkRegistry) size() int {
	return len(r.load())
}
