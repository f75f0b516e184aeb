package xdaily

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// newTestStore 创建测试用 Store，测试结束时自动关闭。
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	s, err := New(t.TempDir(), opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Close(ctx)
	})
	return s
}

// =============================================================================
// 构造
// =============================================================================

// TestNewValidation 测试构造参数校验
func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		opts    []Option
		wantErr error
	}{
		{"空目录", "", nil, ErrEmptyDirectory},
		{"BufferSize 为零", "x", []Option{WithBufferSize(0)}, ErrInvalidBufferSize},
		{"BufferSize 为负", "x", []Option{WithBufferSize(-1)}, ErrInvalidBufferSize},
		{"BufferSize 超上限", "x", []Option{WithBufferSize(maxBufferSize + 1)}, ErrInvalidBufferSize},
		{"FileMode 含类型位", "x", []Option{WithFileMode(os.ModeDir | 0640)}, ErrInvalidFileMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.dir
			if dir != "" {
				dir = filepath.Join(t.TempDir(), dir)
			}
			_, err := New(dir, tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestNewCreatesDirectory 验证目录幂等创建
func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	s, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close(context.Background()) }()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, s.Dir())

	// 同目录再建一个实例不报错
	s2, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s2.Close(context.Background()))
}

// TestNewNilOption 验证 nil option 被静默忽略
func TestNewNilOption(t *testing.T) {
	s, err := New(t.TempDir(), nil, WithBufferSize(8), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))
}

// =============================================================================
// 写入与往返
// =============================================================================

// TestWriteRoundTrip 验证写入后能按行读回，消息与大写级别名齐全
func TestWriteRoundTrip(t *testing.T) {
	s := newTestStore(t)

	s.Write(xsev.LevelWarning, "network", "connection lost")
	require.NoError(t, s.Sync(context.Background()))

	content, ok := s.ReadFile(FileName(time.Now()))
	require.True(t, ok)
	assert.Contains(t, content, "connection lost")
	assert.Contains(t, content, "[WARNING]")
	assert.Contains(t, content, "[network]")
	assert.Contains(t, content, xsev.LevelWarning.Marker())
	assert.True(t, strings.HasSuffix(content, "\n"))

	assert.Equal(t, uint64(1), s.Written())
	assert.Equal(t, uint64(0), s.Dropped())
}

// TestWriteDefaultCategory 验证空分类落为 general
func TestWriteDefaultCategory(t *testing.T) {
	s := newTestStore(t)

	s.Write(xsev.LevelInfo, "", "hello")
	require.NoError(t, s.Sync(context.Background()))

	content, ok := s.ReadFile(FileName(time.Now()))
	require.True(t, ok)
	assert.Contains(t, content, "[general] hello")
}

// TestWriteFIFO 验证落盘顺序与提交顺序一致
func TestWriteFIFO(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 50; i++ {
		s.Write(xsev.LevelInfo, "seq", fmt.Sprintf("msg-%03d", i))
	}
	require.NoError(t, s.Sync(context.Background()))

	content, ok := s.ReadFile(FileName(time.Now()))
	require.True(t, ok)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 50)
	for i, line := range lines {
		assert.Contains(t, line, fmt.Sprintf("msg-%03d", i))
	}
}

// TestConcurrentWriters 验证多生产者并发写入不交错、不丢行、
// 且每个生产者内部保持提交顺序
func TestConcurrentWriters(t *testing.T) {
	const producers = 8
	const perProducer = 200

	s := newTestStore(t, WithBufferSize(producers*perProducer))

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				s.Write(xsev.LevelInfo, "stress", fmt.Sprintf("p%02d-i%04d", p, i))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, s.Sync(context.Background()))

	content, ok := s.ReadFile(FileName(time.Now()))
	require.True(t, ok)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, producers*perProducer)

	// 每行格式完整（未交错）
	linePattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\.\d{3}\] \S+ \[INFO\] \[stress\] p\d{2}-i\d{4}$`)
	// 每个生产者内部序号递增
	lastSeen := make(map[string]int, producers)
	msgPattern := regexp.MustCompile(`(p\d{2})-i(\d{4})$`)

	for _, line := range lines {
		require.True(t, linePattern.MatchString(line), "行格式损坏: %q", line)

		m := msgPattern.FindStringSubmatch(line)
		require.Len(t, m, 3)
		var idx int
		_, err := fmt.Sscanf(m[2], "%d", &idx)
		require.NoError(t, err)
		if last, seen := lastSeen[m[1]]; seen {
			assert.Greater(t, idx, last, "生产者 %s 内部乱序", m[1])
		}
		lastSeen[m[1]] = idx
	}

	assert.Equal(t, uint64(producers*perProducer), s.Written())
	assert.Equal(t, uint64(0), s.Dropped())
}

// =============================================================================
// 背压与关闭
// =============================================================================

// TestWriteAfterClose 验证关闭后的写入只计入丢弃
func TestWriteAfterClose(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))

	s.Write(xsev.LevelError, "general", "too late")
	assert.Equal(t, uint64(1), s.Dropped())
	assert.Equal(t, uint64(0), s.Written())
}

// TestCloseTwice 验证重复关闭返回 ErrClosed
func TestCloseTwice(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Close(context.Background()))
	require.ErrorIs(t, s.Close(context.Background()), ErrClosed)
}

// TestCloseDrainsQueue 验证 Close 排空已入队的记录
func TestCloseDrainsQueue(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, WithBufferSize(128))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		s.Write(xsev.LevelInfo, "drain", fmt.Sprintf("msg-%d", i))
	}
	require.NoError(t, s.Close(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, FileName(time.Now())))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// 入队成功的记录必须全部落盘
	assert.Len(t, lines, 100-int(s.Dropped()))
}

// TestSyncAfterClose 验证关闭后的 Sync 返回 ErrClosed
func TestSyncAfterClose(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))

	require.ErrorIs(t, s.Sync(context.Background()), ErrClosed)
}

// TestOnErrorCallback 验证落盘失败通过回调上报且不中断 worker
func TestOnErrorCallback(t *testing.T) {
	dir := t.TempDir()

	errCh := make(chan error, 16)
	s, err := New(dir, WithOnError(func(e error) { errCh <- e }))
	require.NoError(t, err)
	defer func() { _ = s.Close(context.Background()) }()

	// 用同名普通文件顶替目录，迫使 open 失败
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, nil, 0640))

	s.Write(xsev.LevelError, "general", "will fail")
	require.NoError(t, s.Sync(context.Background()))

	select {
	case e := <-errCh:
		assert.ErrorContains(t, e, "open")
	default:
		t.Fatal("期望收到错误回调")
	}
	assert.Equal(t, uint64(1), s.Dropped())

	// 目录恢复后 worker 继续工作
	require.NoError(t, os.Remove(dir))
	require.NoError(t, os.MkdirAll(dir, 0750))
	s.Write(xsev.LevelInfo, "general", "recovered")
	require.NoError(t, s.Sync(context.Background()))
	assert.Equal(t, uint64(1), s.Written())
}
