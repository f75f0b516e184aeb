package xdaily

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName otel 仪表的 scope 名称
const instrumentationName = "github.com/hiETsang/LogKit/pkg/observability/xdaily"

// storeMetrics 落盘计数的 otel 仪表。
//
// 使用全局 MeterProvider：宿主未安装 SDK 时所有调用都是 noop，
// 本包不引入任何导出器依赖。仪表创建失败时降级为 nil（安静跳过）。
type storeMetrics struct {
	written metric.Int64Counter
	dropped metric.Int64Counter
}

// newStoreMetrics 创建落盘计数仪表。
func newStoreMetrics() storeMetrics {
	meter := otel.Meter(instrumentationName)

	written, err := meter.Int64Counter("logkit.file.written_lines",
		metric.WithDescription("成功落盘的日志行数"))
	if err != nil {
		written = nil
	}
	dropped, err := meter.Int64Counter("logkit.file.dropped_records",
		metric.WithDescription("被丢弃的日志记录数（队列满、已关闭、落盘失败）"))
	if err != nil {
		dropped = nil
	}

	return storeMetrics{written: written, dropped: dropped}
}

func (m storeMetrics) addWritten(n int64) {
	if m.written != nil {
		m.written.Add(context.Background(), n)
	}
}

func (m storeMetrics) addDropped(n int64) {
	if m.dropped != nil {
		m.dropped.Add(context.Background(), n)
	}
}
