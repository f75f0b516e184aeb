package xfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSafeJoin 表驱动验证拼接约束
func TestSafeJoin(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		input   string
		want    string
		wantErr error
	}{
		{"普通日志文件名", "/var/log/app", "log-2026-01-02.txt", "/var/log/app/log-2026-01-02.txt", nil},
		{"两个点开头的合法文件名", "/var/log/app", "..config", "/var/log/app/..config", nil},
		{"子目录内文件", "/var/log/app", "sub/a.txt", "/var/log/app/sub/a.txt", nil},
		{"相对路径穿越", "/var/log/app", "../etc/passwd", "", ErrPathTraversal},
		{"深层穿越", "/var/log/app", "a/../../etc/passwd", "", ErrPathTraversal},
		{"绝对路径", "/var/log/app", "/etc/passwd", "", ErrInvalidPath},
		{"Windows 驱动器路径", "/var/log/app", `C:\Windows\system32`, "", ErrInvalidPath},
		{"UNC 路径", "/var/log/app", `\\server\share`, "", ErrInvalidPath},
		{"Windows 风格穿越", "/var/log/app", `..\..\etc`, "", ErrPathTraversal},
		{"空文件名", "/var/log/app", "", "", ErrEmptyPath},
		{"空基准目录", "", "a.txt", "", ErrEmptyPath},
		{"相对基准目录", "logs", "a.txt", "", ErrInvalidPath},
		{"文件名含空字节", "/var/log/app", "a\x00.txt", "", ErrNullByte},
		{"基准目录含空字节", "/var/\x00log", "a.txt", "", ErrNullByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeJoin(tt.base, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.want), got)
		})
	}
}

// TestHasDotDotSegment 验证路径段精确匹配
func TestHasDotDotSegment(t *testing.T) {
	assert.True(t, hasDotDotSegment(".."))
	assert.True(t, hasDotDotSegment("a/../b"))
	assert.True(t, hasDotDotSegment(`a\..\b`))
	assert.False(t, hasDotDotSegment("..config"))
	assert.False(t, hasDotDotSegment("app..2024.log"))
	assert.False(t, hasDotDotSegment("a/b/c"))
	assert.False(t, hasDotDotSegment(""))
}
