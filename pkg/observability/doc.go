// Package observability 提供日志设施相关的子包。
//
// 子包列表：
//   - xsev: 严重级别，六级全序、名称与标记符
//   - xdispatch: 日志事件分发器，级别过滤后分发到系统设施/文件/回调 Sink
//   - xdaily: 按天分片的只追加日志存储，后台串行落盘与保留清理
//   - xsweep: 基于 cron 的定时保留清理
//
// 设计原则：
//   - 日志方法永不向调用方返回错误，内部失败走错误回调
//   - 热路径零锁：级别过滤单次原子比较，Sink 集合 copy-on-write
//   - 磁盘 I/O 由唯一后台 worker 串行执行，调用方不等待
package observability
