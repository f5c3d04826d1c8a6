package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line), raw)
		out = append(out, line)
	}
	return out
}

func debugLogger(buf *bytes.Buffer) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestSlogLogger_EachMethodUsesItsLevel(t *testing.T) {
	ctx := context.Background()
	cases := map[string]struct {
		call  func(l Logger)
		level string
	}{
		"debug": {func(l Logger) { l.Debug(ctx, "pass started", "type", "food_entry") }, "DEBUG"},
		"info":  {func(l Logger) { l.Info(ctx, "pass started", "type", "food_entry") }, "INFO"},
		"warn":  {func(l Logger) { l.Warn(ctx, "pass started", "type", "food_entry") }, "WARN"},
		"error": {func(l Logger) { l.Error(ctx, "pass started", "type", "food_entry") }, "ERROR"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.call(debugLogger(&buf))

			lines := jsonLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tc.level, lines[0]["level"])
			assert.Equal(t, "pass started", lines[0]["msg"])
			assert.Equal(t, "food_entry", lines[0]["type"])
		})
	}
}

func TestSlogLogger_WithDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := debugLogger(&buf)
	child := parent.With("module", "syncer")

	child.Info(context.Background(), "from child")
	parent.Info(context.Background(), "from parent")

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "syncer", lines[0]["module"])
	assert.NotContains(t, lines[1], "module")
}

func TestSlogLogger_WithoutArgsReturnsSameLogger(t *testing.T) {
	l := Nop()
	assert.Same(t, l, l.With())
}

func TestNewSlogLogger_NilFallsBackToDefault(t *testing.T) {
	l := NewSlogLogger(nil)
	assert.Same(t, slog.Default(), l.base)
}

func TestNop_IsNeverEnabled(t *testing.T) {
	l := Nop()
	assert.False(t, l.base.Enabled(context.Background(), slog.LevelError))
	l.With("k", "v").Error(context.Background(), "dropped")
}
