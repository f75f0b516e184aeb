// Package xfile 提供日志目录场景下的路径安全工具。
//
// 本包服务于 xdaily 等拥有专属目录的组件：目录在构造时创建，
// 之后所有按文件名的操作（读取、删除）都必须被约束在该目录内。
//
// # 函数对比
//
//   - EnsureDir: 以 0750 权限幂等创建目录（含父级）
//   - SafeJoin: 将相对文件名拼接到基准目录，保证结果不逃逸
//
// # 路径穿越检测
//
// 检测使用精确的路径段匹配：只有 ".." 作为独立路径段时才视为穿越。
// 以 ".." 开头的合法文件名（如 "..config"）不会被误判：
//
//	SafeJoin("/var/log", "..config")      // ✓ 合法 -> "/var/log/..config"
//	SafeJoin("/var/log", "../etc/passwd") // ✗ 拒绝 -> ErrPathTraversal
//
// 同时拒绝包含空字节（\x00）的路径：Linux 内核在 VFS 层会在空字节处
// 截断路径，导致 Go 代码与操作系统看到的路径不一致。
//
// # 安全边界
//
// 本包返回"经过验证的路径字符串"，不解析符号链接；检查与实际文件操作
// 之间存在 TOCTOU 窗口。适用于可信环境下的路径构建（如进程专属的日志
// 目录），不能替代对抗性环境下的安全文件访问。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SafeJoin("/var/log", "../etc/passwd")
//	if errors.Is(err, xfile.ErrPathTraversal) {
//	    // 处理路径穿越
//	}
package xfile
