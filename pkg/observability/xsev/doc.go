// Package xsev 定义日志严重级别及其固定输出表示。
//
// # 级别全序
//
// 六个级别按严重程度严格递增：
//
//	LevelDebug < LevelInfo < LevelNotice < LevelWarning < LevelError < LevelFault
//
// 级别底层是整数 rank，可直接用 >= 比较做过滤判断，这是分发热路径上
// 唯一的开销（一次整数比较）。
//
// # 输出表示
//
// 每个级别有两个稳定的展示形式，均属于文件行格式契约的一部分：
//   - String(): 大写规范名（DEBUG/INFO/NOTICE/WARNING/ERROR/FAULT）
//   - Marker(): 单字符标记（🔍 ℹ️ 📋 ⚠️ ❌ 🔥），便于人眼快速扫描日志文件
//
// 两者一经发布不可变更，下游日志阅读工具依赖其按位稳定。
//
// # 配置支持
//
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，可在 YAML/JSON 配置中
// 直接序列化；[ParseLevel] 解析大小写不敏感的级别名，"warn" 视为 warning 别名。
//
// # slog 映射
//
// [Level.SlogLevel] 将六级映射到 log/slog 的数值空间：notice 与 fault 在 slog
// 中没有同名级别，分别映射为 Info+2 与 Error+4，保持严格全序与逐级过滤语义。
package xsev
