package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), "line: %s", line)
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", "two")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err", "d", true)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "dbg", lines[0]["message"])
	assert.EqualValues(t, 1, lines[0]["a"])

	assert.Equal(t, "info", lines[1]["level"])
	assert.Equal(t, "two", lines[1]["b"])

	assert.Equal(t, "warn", lines[2]["level"])

	assert.Equal(t, "error", lines[3]["level"])
	assert.Equal(t, true, lines[3]["d"])
}

func TestZerologLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	log.With("module", "rest").Info(context.Background(), "hello", "k", "v")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "rest", lines[0]["module"])
	assert.Equal(t, "v", lines[0]["k"])
}

func TestNew_SelectsBackendAndLevel(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		level     string
		wantDebug bool
		wantSub   string
	}{
		{name: "json info", format: FormatJSON, level: "info", wantSub: `"msg":"visible"`},
		{name: "text debug", format: FormatText, level: "debug", wantDebug: true, wantSub: "msg=visible"},
		{name: "zerolog warn", format: FormatZerolog, level: "warn", wantSub: `"message":"shown"`},
		{name: "unknown format falls back to json", format: "xml", level: "bogus", wantSub: `"msg":"visible"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.format, tt.level)
			ctx := context.Background()

			log.Debug(ctx, "hidden-debug")
			log.Info(ctx, "visible")
			log.Warn(ctx, "shown")

			out := buf.String()
			assert.Contains(t, out, tt.wantSub)
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "hidden-debug"))
		})
	}
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	log := NewNop()
	log.With("a", 1).Error(context.Background(), "nothing")
}
