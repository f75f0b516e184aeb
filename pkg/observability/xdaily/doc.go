// Package xdaily 提供按天分片、只追加的日志文件存储。
//
// # 轮转模型
//
// 轮转是隐式且无状态的：当前文件名由日期纯函数计算（log-YYYY-MM-DD.txt），
// 每次写入重新计算并以追加模式打开、写入、关闭。没有轮转事件、定时器或
// 文件句柄缓存，以每次写入一次 open 的代价换取进程重启与时钟变更下的
// 正确性。
//
// # 并发模型
//
// 生产者侧任意并发，消费者侧是唯一的后台 worker goroutine：所有文件 I/O
// 由 worker 串行执行，这是文件完整性的正确性机制——无需文件级锁即可保证
// 不会出现两条日志行交错。入队是非阻塞的：队列满时丢弃该条记录并计数，
// 调用方永远不会因磁盘 I/O 而阻塞。
//
// 设计决策: 丢弃策略为 drop-newest。生产者无等待优先于不丢日志，
// 丢弃数通过 [Store.Dropped] 与 otel 计数器暴露，宿主可自行告警。
//
// # 文件行格式
//
// 每条记录占一行，格式按位稳定：
//
//	[HH:mm:ss.mmm] <marker> [<LEVEL>] [<category>] <message>\n
//
// 时间取 worker 实际落盘时刻（而非入队时刻），高负载下存在可接受的偏移。
//
// # 保留清理
//
// [Store.CleanupExpired] 删除修改时间早于 now-retentionDays（日历日运算）
// 的日志文件。单个文件的删除失败通过错误回调上报并继续处理其余文件，
// 重复执行是幂等的。
//
// # 错误上报
//
// 设计决策: 本包自身的失败（打开、写入、删除）只通过 OnError 回调上报，
// 绝不写入自己管理的文件——失败的组件不能同时充当失败的上报通道。
// 回调不得再向同一 Store 写入，否则产生递归。
package xdaily
