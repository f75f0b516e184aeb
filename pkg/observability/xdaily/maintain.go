package xdaily

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hiETsang/LogKit/pkg/util/xfile"
)

// CleanupExpired 删除早于保留窗口的日志文件。
//
// cutoff = now - retentionDays（AddDate 日历日运算）；修改时间严格早于
// cutoff 的日志文件被删除。对只追加的按天文件，修改时间即当天最后一次
// 写入，作为创建时间的代理最多多保留一天，不会提前删除。
//
// 单个文件的读取/删除失败通过错误回调上报，不中断对其余文件的处理；
// 仅目录枚举失败向上返回。重复执行是幂等的。
func (s *Store) CleanupExpired(ctx context.Context, retentionDays int) error {
	if retentionDays <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRetention, retentionDays)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("xdaily: list %s: %w", s.dir, err)
	}

	cutoff := s.now().AddDate(0, 0, -retentionDays)

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() || !isLogFileName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.reportError(fmt.Errorf("xdaily: stat %s: %w", entry.Name(), err))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.reportError(fmt.Errorf("xdaily: remove %s: %w", entry.Name(), err))
		}
	}
	return nil
}

// ListLogFiles 返回目录内全部日志文件名，按文件名降序（最新日期在前）。
//
// 文件名内嵌 ISO 日期，字典序降序即日期降序。
func (s *Store) ListLogFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("xdaily: list %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isLogFileName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ReadFile 返回指定日志文件的全部内容。
//
// 文件缺失、不可读或文件名非法时返回 ("", false)，不向调用方抛出错误——
// 读不到就是"没有内容可用"。文件名被约束在日志目录内，穿越输入一律拒绝。
func (s *Store) ReadFile(name string) (string, bool) {
	path, err := xfile.SafeJoin(s.dir, name)
	if err != nil {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Tail 返回指定日志文件的最后 n 行。
//
// 与 ReadFile 相同的不可用语义：缺失或不可读返回 (nil, false)。
func (s *Store) Tail(name string, n int) ([]string, bool) {
	if n <= 0 {
		return nil, false
	}

	content, ok := s.ReadFile(name)
	if !ok {
		return nil, false
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}, true
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, true
}

// DeleteAll 删除目录内全部日志文件。
//
// 单个文件的删除失败通过错误回调上报，不中断批量操作；
// 仅目录枚举失败向上返回。
func (s *Store) DeleteAll(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("xdaily: list %s: %w", s.dir, err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() || !isLogFileName(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.reportError(fmt.Errorf("xdaily: remove %s: %w", entry.Name(), err))
		}
	}
	return nil
}
