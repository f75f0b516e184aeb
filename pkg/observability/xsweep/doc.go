// Package xsweep 提供日志文件的定时保留清理。
//
// Sweeper 按 cron 表达式（默认每天 03:00）触发一次过期清理，
// 保留天数在每次触发时从 [RetentionSource] 读取，随运行时配置
// 变更自动生效，无需重建 Sweeper。
//
// 清理本身是幂等的按修改时间删除（见 xdaily.Store.CleanupExpired），
// 单个文件的失败不中断本轮清理；整轮失败通过错误回调上报。
//
// 典型接法：xdispatch.Dispatcher 实现了 RetentionSource，
// 把 Dispatcher 和它的 Store 一起交给 New 即可。
package xsweep
