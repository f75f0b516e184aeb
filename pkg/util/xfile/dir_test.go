package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDir 验证目录创建和幂等性
func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "logs")

	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(DefaultDirPerm), info.Mode().Perm())

	// 重复创建不报错
	require.NoError(t, EnsureDir(dir))
}

// TestEnsureDirWithPerm 验证自定义权限和参数校验
func TestEnsureDirWithPerm(t *testing.T) {
	t.Run("自定义权限", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "custom")
		require.NoError(t, EnsureDirWithPerm(dir, 0700))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("空路径", func(t *testing.T) {
		require.ErrorIs(t, EnsureDirWithPerm("", 0750), ErrEmptyPath)
	})

	t.Run("空字节", func(t *testing.T) {
		require.ErrorIs(t, EnsureDirWithPerm("a\x00b", 0750), ErrNullByte)
	})

	t.Run("缺少执行位", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "noexec")
		require.ErrorIs(t, EnsureDirWithPerm(dir, 0600), ErrInvalidPath)
	})
}
