package xsev

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 全序与比较
// =============================================================================

// TestLevelOrdering 验证六个级别 rank 严格递增
func TestLevelOrdering(t *testing.T) {
	levels := Levels()
	require.Len(t, levels, 6)

	for i := 1; i < len(levels); i++ {
		assert.Greater(t, int(levels[i]), int(levels[i-1]),
			"%s 应大于 %s", levels[i], levels[i-1])
	}
}

// TestSlogLevelPreservesOrder 验证 slog 映射保持严格全序
func TestSlogLevelPreservesOrder(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		assert.Greater(t, int(levels[i].SlogLevel()), int(levels[i-1].SlogLevel()),
			"slog 映射后 %s 应仍大于 %s", levels[i], levels[i-1])
	}
}

// =============================================================================
// 输出表示
// =============================================================================

// TestLevelString 验证大写规范名稳定
func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelNotice, "NOTICE"},
		{LevelWarning, "WARNING"},
		{LevelError, "ERROR"},
		{LevelFault, "FAULT"},
		{Level(42), "LEVEL(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

// TestLevelMarker 验证单字符标记稳定且互不相同
func TestLevelMarker(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "🔍"},
		{LevelInfo, "ℹ️"},
		{LevelNotice, "📋"},
		{LevelWarning, "⚠️"},
		{LevelError, "❌"},
		{LevelFault, "🔥"},
		{Level(-1), "•"},
	}

	seen := make(map[string]Level)
	for _, tt := range tests {
		got := tt.level.Marker()
		assert.Equal(t, tt.want, got)
		if tt.level.Valid() {
			prev, dup := seen[got]
			assert.False(t, dup, "标记 %s 在 %s 和 %s 之间重复", got, prev, tt.level)
			seen[got] = tt.level
		}
	}
}

// TestSlogLevelMapping 验证逐级映射的端点值
func TestSlogLevelMapping(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LevelInfo.SlogLevel())
	assert.Equal(t, slog.LevelInfo+2, LevelNotice.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LevelWarning.SlogLevel())
	assert.Equal(t, slog.LevelError, LevelError.SlogLevel())
	assert.Equal(t, slog.LevelError+4, LevelFault.SlogLevel())
}

// =============================================================================
// 解析与序列化
// =============================================================================

// TestParseLevel 测试级别解析
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{"小写 debug", "debug", LevelDebug, false},
		{"大写 INFO", "INFO", LevelInfo, false},
		{"混合大小写", "NoTiCe", LevelNotice, false},
		{"warning 全称", "warning", LevelWarning, false},
		{"warn 别名", "warn", LevelWarning, false},
		{"error", "error", LevelError, false},
		{"fault", "fault", LevelFault, false},
		{"前后空白", "  fault  ", LevelFault, false},
		{"未知级别", "verbose", LevelInfo, true},
		{"空字符串", "", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLevelTextRoundTrip 验证 MarshalText/UnmarshalText 往返一致
func TestLevelTextRoundTrip(t *testing.T) {
	for _, level := range Levels() {
		data, err := level.MarshalText()
		require.NoError(t, err)

		var back Level
		require.NoError(t, back.UnmarshalText(data))
		assert.Equal(t, level, back)
	}
}

// TestLevelUnmarshalInvalid 验证非法输入不改写目标值
func TestLevelUnmarshalInvalid(t *testing.T) {
	l := LevelError
	require.Error(t, l.UnmarshalText([]byte("bogus")))
	assert.Equal(t, LevelError, l)
}

// TestLevelValid 验证有效范围判断
func TestLevelValid(t *testing.T) {
	for _, level := range Levels() {
		assert.True(t, level.Valid())
	}
	assert.False(t, Level(-1).Valid())
	assert.False(t, Level(6).Valid())
}
