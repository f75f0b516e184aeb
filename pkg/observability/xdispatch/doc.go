// Package xdispatch 提供进程内日志事件的分发器。
//
// Dispatcher 是日志事件的唯一入口：按严重级别过滤后，把一条事件同时送往
// 三类出口——系统设施（slog Handler）、按天文件存储（xdaily.Store）、
// 以及运行时注册的回调 Sink。
//
// # 分发模型
//
// 每个严重级别对应一个便捷方法（Debug/Info/Notice/Warning/Error/Fault），
// 全部汇入同一条内部分发路径：
//
//  1. 级别过滤：低于最小级别的事件在单次原子比较后直接返回，零副作用；
//  2. 详细模式：启用且事件携带调用位置时，在消息前添加
//     "[文件名:行号 函数] " 前缀；
//  3. 系统设施：总是转发给 slog Handler（级别过滤由 Dispatcher 独占，
//     Handler 以 Debug 级别构建）；
//  4. 文件存储：文件出口启用时异步提交给 Store，调用方不等待磁盘；
//  5. 回调 Sink：按注册顺序在调用方 goroutine 上同步执行。
//
// 日志方法永不向调用方返回错误。内部失败（Handler 写入失败等）通过
// SetOnError 回调上报，带递归保护。
//
// # 运行时配置
//
// 最小级别、文件出口开关、详细模式、保留天数都是独立的原子字段，
// 可在运行期单独调整，调整即时对后续事件生效，不加锁、不中断分发。
//
// # 与 slog 的关系
//
// xdispatch 面向"一条消息进、多个出口出"的日志设施场景；系统设施出口
// 本身就是一个 slog.Handler，宿主应用已有的 slog 管线可通过 SetHandler
// 直接接入，事件分类以 "category" 属性附加在记录上。
package xdispatch
