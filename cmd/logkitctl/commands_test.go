package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiETsang/LogKit/pkg/observability/xdaily"
	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// captureStdout 把命令输出重定向到缓冲区
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = orig })
	return &buf
}

// seedLogs 在目录内准备若干日志文件，返回目录
func seedLogs(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	store, err := xdaily.New(dir)
	require.NoError(t, err)
	defer func() { _ = store.Close(context.Background()) }()

	for i := 0; i < 3; i++ {
		store.Write(xsev.LevelInfo, "general", fmt.Sprintf("line-%d", i))
	}
	require.NoError(t, store.Sync(context.Background()))

	// 一份 30 天前的旧文件
	day := time.Now().AddDate(0, 0, -30)
	path := filepath.Join(dir, xdaily.FileName(day))
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0640))
	require.NoError(t, os.Chtimes(path, day, day))
	return dir
}

// =============================================================================
// list / cat / tail
// =============================================================================

func TestCmdList(t *testing.T) {
	dir := seedLogs(t)
	buf := captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "list"})
	require.Equal(t, 0, code)

	today := xdaily.FileName(time.Now())
	oldName := xdaily.FileName(time.Now().AddDate(0, 0, -30))
	// 最新日期在前
	assert.Equal(t, today+"\n"+oldName+"\n", buf.String())
}

func TestCmdCat(t *testing.T) {
	dir := seedLogs(t)
	buf := captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "cat", xdaily.FileName(time.Now())})
	require.Equal(t, 0, code)

	assert.Contains(t, buf.String(), "line-0")
	assert.Contains(t, buf.String(), "line-2")
	assert.Contains(t, buf.String(), "[INFO]")
}

func TestCmdCatMissing(t *testing.T) {
	dir := seedLogs(t)
	captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "cat", "log-1999-01-01.txt"})
	assert.Equal(t, 1, code)
}

func TestCmdCatNoArg(t *testing.T) {
	dir := seedLogs(t)
	captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "cat"})
	assert.Equal(t, 2, code)
}

func TestCmdTail(t *testing.T) {
	dir := seedLogs(t)
	buf := captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "tail", "-n", "2", xdaily.FileName(time.Now())})
	require.Equal(t, 0, code)

	assert.NotContains(t, buf.String(), "line-0")
	assert.Contains(t, buf.String(), "line-1")
	assert.Contains(t, buf.String(), "line-2")
}

func TestCmdTailInvalidCount(t *testing.T) {
	dir := seedLogs(t)
	captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "tail", "-n", "0", xdaily.FileName(time.Now())})
	assert.Equal(t, 2, code)
}

// =============================================================================
// clean / purge
// =============================================================================

func TestCmdClean(t *testing.T) {
	dir := seedLogs(t)
	buf := captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "clean", "--days", "7"})
	require.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "已删除 1 个过期日志文件")

	// 今天的文件仍在
	assert.FileExists(t, filepath.Join(dir, xdaily.FileName(time.Now())))
	assert.NoFileExists(t, filepath.Join(dir, xdaily.FileName(time.Now().AddDate(0, 0, -30))))
}

func TestCmdCleanInvalidDays(t *testing.T) {
	dir := seedLogs(t)
	captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "clean", "--days", "0"})
	assert.Equal(t, 2, code)
}

func TestCmdPurge(t *testing.T) {
	dir := seedLogs(t)
	buf := captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "purge", "--yes"})
	require.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "已删除 2 个日志文件")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCmdPurgeWithoutConfirm(t *testing.T) {
	dir := seedLogs(t)
	captureStdout(t)

	code := run([]string{"logkitctl", "-d", dir, "purge"})
	assert.Equal(t, 2, code)

	// 未确认时文件原封不动
	assert.FileExists(t, filepath.Join(dir, xdaily.FileName(time.Now())))
}

// =============================================================================
// 参数错误
// =============================================================================

func TestCmdUnknown(t *testing.T) {
	captureStdout(t)

	code := run([]string{"logkitctl", "frobnicate"})
	assert.Equal(t, 2, code)
}

func TestCmdEmptyDir(t *testing.T) {
	captureStdout(t)

	code := run([]string{"logkitctl", "-d", "  ", "list"})
	assert.Equal(t, 2, code)
}
