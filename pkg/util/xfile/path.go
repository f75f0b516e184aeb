package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// isWindowsAbsPath 检测 Windows 风格的绝对或驱动器相关路径。
// 在非 Windows 平台上，filepath.IsAbs 不识别 "C:\..." 或 "\\server\..." 形式，
// 需要显式检测以防止跨平台场景下的约束绕过。
func isWindowsAbsPath(path string) bool {
	// 驱动器号: "C:\..."、"C:/..." 以及驱动器相对路径 "C:foo"
	if len(path) >= 2 && isASCIILetter(path[0]) && path[1] == ':' {
		return true
	}
	// Windows 根路径 "\foo\..." 或 UNC 路径 "\\server\..."
	return len(path) >= 1 && path[0] == '\\'
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 逐字符扫描实现零内存分配；同时将 '/' 和 '\' 视为分隔符，
// 以覆盖 Windows 风格路径穿越（即使在 Linux 上）。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SafeJoin 安全地将相对文件名拼接到基准目录。
//
// 安全保证：
//   - 拒绝绝对路径（name 必须是相对路径，含 Windows 形式）
//   - 拒绝路径穿越（".." 路径段）
//   - 验证最终路径仍在 base 目录内
//
// 使用场景：把外部传入的日志文件名约束在日志目录内，
// 如 ReadFile("../../etc/passwd") 之类的输入会被拒绝而非放行。
//
// 示例：
//
//	SafeJoin("/var/log/app", "log-2026-01-02.txt") // -> "/var/log/app/log-2026-01-02.txt"
//	SafeJoin("/var/log/app", "../etc/passwd")      // -> "", ErrPathTraversal
//	SafeJoin("/var/log/app", "/etc/passwd")        // -> "", ErrInvalidPath
func SafeJoin(base, name string) (string, error) {
	cleanBase, err := validateBase(base)
	if err != nil {
		return "", err
	}

	cleanName, err := validateName(name)
	if err != nil {
		return "", err
	}

	joined := filepath.Join(cleanBase, cleanName)

	// filepath.Rel 对两个已清理的绝对路径不会返回错误；
	// 该分支是防御标准库行为变更的保险，防止出现静默逃逸。
	rel, err := filepath.Rel(cleanBase, joined)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path (%v): %w", err, ErrPathEscaped)
	}
	if hasDotDotSegment(rel) {
		return "", ErrPathEscaped
	}
	return joined, nil
}

// validateBase 验证并清理基准目录。
func validateBase(base string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("base directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(base) {
		return "", fmt.Errorf("base contains null byte: %w", ErrNullByte)
	}
	cleanBase := filepath.Clean(base)
	if !filepath.IsAbs(cleanBase) {
		return "", fmt.Errorf("base must be an absolute path: %w", ErrInvalidPath)
	}
	return cleanBase, nil
}

// validateName 验证并清理相对文件名。
func validateName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is required: %w", ErrEmptyPath)
	}
	if containsNullByte(name) {
		return "", fmt.Errorf("name contains null byte: %w", ErrNullByte)
	}
	if filepath.IsAbs(name) || isWindowsAbsPath(name) {
		return "", fmt.Errorf("name must be relative (absolute path not allowed): %w", ErrInvalidPath)
	}
	cleanName := filepath.Clean(name)
	// 按路径段精确判断穿越，避免误伤 "..config" 这类合法文件名
	if hasDotDotSegment(cleanName) {
		return "", fmt.Errorf("path traversal in name: %w", ErrPathTraversal)
	}
	return cleanName, nil
}
