package xdispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hiETsang/LogKit/pkg/observability/xdaily"
	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// closeTimeout 清理时排空文件队列的时间上限
const closeTimeout = 5 * time.Second

// closeContext 返回 cleanup 用的限时 context
func closeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), closeTimeout)
}

// subsystemKey 系统设施记录上的子系统属性名
const subsystemKey = "subsystem"

// DefaultRetentionDays 未显式配置时的日志保留天数
const DefaultRetentionDays = 7

// Builder 分发器配置构建器。
//
// 链式调用收集配置，首个配置错误被保留并由 Build 返回（first-error-wins）。
type Builder struct {
	output        io.Writer
	format        string
	handler       slog.Handler
	subsystem     string
	minLevel      xsev.Level
	verbose       bool
	retentionDays int

	store      *xdaily.Store
	fileDir    string
	bufferSize int
	onError    func(error)

	err error
}

// New 创建配置构建器
//
// 默认配置：stderr text 输出，Info 级别，详细模式关闭，
// 保留 7 天，无文件出口。
func New() *Builder {
	return &Builder{
		output:        os.Stderr,
		format:        "text",
		minLevel:      xsev.LevelInfo,
		retentionDays: DefaultRetentionDays,
		bufferSize:    xdaily.DefaultBufferSize,
	}
}

// SetMinLevel 设置最小级别
func (b *Builder) SetMinLevel(level xsev.Level) *Builder {
	if !level.Valid() {
		b.setErr(fmt.Errorf("xdispatch: invalid min level %d", int(level)))
		return b
	}
	b.minLevel = level
	return b
}

// SetMinLevelString 通过字符串设置最小级别
func (b *Builder) SetMinLevelString(s string) *Builder {
	level, err := xsev.ParseLevel(s)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.minLevel = level
	return b
}

// SetVerbose 设置详细模式（调用位置前缀）
func (b *Builder) SetVerbose(enable bool) *Builder {
	b.verbose = enable
	return b
}

// SetSubsystem 设置子系统名，作为固定属性附加到系统设施的每条记录
func (b *Builder) SetSubsystem(name string) *Builder {
	b.subsystem = name
	return b
}

// SetOutput 设置系统设施的输出目标。
// 与 SetHandler 互斥时以后者为准（显式 Handler 覆盖 output/format）。
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w != nil {
		b.output = w
	}
	return b
}

// SetFormat 设置系统设施输出格式：text 或 json，空值视为默认 text
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		b.format = "text"
		return b
	}
	if normalized != "text" && normalized != "json" {
		b.setErr(fmt.Errorf("%w: %q", ErrInvalidFormat, format))
		return b
	}
	b.format = normalized
	return b
}

// SetHandler 直接指定系统设施的 slog.Handler，覆盖 output/format。
//
// 级别过滤由 Dispatcher 独占执行：传入的 Handler 应接受 Debug 级别，
// 否则低级别事件会被 Handler 二次过滤掉。
func (b *Builder) SetHandler(h slog.Handler) *Builder {
	b.handler = h
	return b
}

// SetStore 接入外部创建的文件存储并启用文件出口。
// Store 的生命周期由调用方管理，Build 返回的 cleanup 不会关闭它。
func (b *Builder) SetStore(s *xdaily.Store) *Builder {
	if b.fileDir != "" {
		b.setErr(ErrConflictingStore)
		return b
	}
	b.store = s
	return b
}

// SetFileDirectory 指定日志目录并启用文件出口。
// Store 由 Build 创建并持有，cleanup 负责关闭。
func (b *Builder) SetFileDirectory(dir string) *Builder {
	if b.store != nil {
		b.setErr(ErrConflictingStore)
		return b
	}
	b.fileDir = dir
	return b
}

// SetBufferSize 设置文件出口的队列容量（仅对 SetFileDirectory 创建的 Store 生效）
func (b *Builder) SetBufferSize(n int) *Builder {
	b.bufferSize = n
	return b
}

// SetRetentionDays 设置日志保留天数
func (b *Builder) SetRetentionDays(days int) *Builder {
	if days <= 0 {
		b.setErr(fmt.Errorf("%w: got %d", ErrInvalidRetention, days))
		return b
	}
	b.retentionDays = days
	return b
}

// SetOnError 设置内部错误回调。
//
// 出口内部失败（Handler 写入失败、文件落盘失败）通过此回调上报，
// 带递归保护与 panic 隔离；回调在热路径同步执行，应保持轻量。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

// setErr 保留首个配置错误
func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build 构建 Dispatcher 实例
//
// 返回值：
//   - *Dispatcher: 分发器实例
//   - func() error: 清理函数，关闭 Build 自建的文件存储（幂等）
//   - error: 配置错误
func (b *Builder) Build() (*Dispatcher, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	handler := b.handler
	if handler == nil {
		// Handler 永远以 Debug 级别构建：级别过滤由 Dispatcher 独占，
		// 避免同一事件被两层阈值各过滤一次
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		switch b.format {
		case "json":
			handler = slog.NewJSONHandler(b.output, opts)
		default:
			handler = slog.NewTextHandler(b.output, opts)
		}
	}
	if b.subsystem != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String(subsystemKey, b.subsystem)})
	}

	d := &Dispatcher{
		handler: handler,
		onError: b.onError,
	}
	d.minLevel.Store(int32(b.minLevel))
	d.verbose.Store(b.verbose)
	d.retentionDays.Store(int32(b.retentionDays))

	store := b.store
	ownsStore := false
	if b.fileDir != "" {
		var err error
		// 文件出口的内部失败路由到系统设施（再经 onError 通知宿主），
		// 绝不写回可能正在失败的文件本身
		store, err = xdaily.New(b.fileDir,
			xdaily.WithBufferSize(b.bufferSize),
			xdaily.WithOnError(d.reportStoreError),
		)
		if err != nil {
			return nil, nil, err
		}
		ownsStore = true
	}
	d.store = store
	d.fileEnabled.Store(store != nil)

	return d, b.createCleanup(store, ownsStore), nil
}

// createCleanup 创建清理函数，只关闭 Build 自建的 Store
func (b *Builder) createCleanup(store *xdaily.Store, ownsStore bool) func() error {
	var once sync.Once

	return func() error {
		var err error
		once.Do(func() {
			if ownsStore && store != nil {
				ctx, cancel := closeContext()
				defer cancel()
				err = store.Close(ctx)
			}
		})
		return err
	}
}
