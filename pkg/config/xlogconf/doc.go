// Package xlogconf 提供日志设施的文件化配置。
//
// 把 YAML/JSON 配置文件解析为类型化的 [Settings]，并应用到运行中的
// [xdispatch.Dispatcher]；配合 [Watch] 可实现配置热更新。
//
// # 配置键
//
//	min_level:      最小级别（debug/info/notice/warning/error/fault）
//	verbose:        是否启用调用位置前缀
//	file_sink:      是否启用文件出口
//	retention_days: 日志保留天数
//
// 所有键都是可选的：缺失的键在 Apply 时保持 Dispatcher 现状不变，
// 即配置文件只声明想要覆盖的部分。
//
// # 热更新
//
// Watch 监视配置文件所在目录（编辑器原子写入会先删后建，监视文件
// 本身会丢事件），带防抖合并连续变更，变更后重新加载并通过回调
// 交给调用方应用。
package xlogconf
