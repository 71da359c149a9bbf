package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	cause := errors.New("arena exhausted")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("op", "mul"), "op", "mul"},
		{"Int", Int("bytes", 64), "bytes", 64},
		{"Uint64", Uint64("limit", 1<<40), "limit", uint64(1 << 40)},
		{"Float64", Float64("elapsed_ms", 1.5), "elapsed_ms", 1.5},
		{"Err", Err(cause), "error", cause},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.field.Key)
			assert.Equal(t, tt.value, tt.field.Value)
		})
	}
}

// decode parses the single JSON entry written to buf.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output: %s", buf.String())
	return entry
}

func TestZerologAdapterLevels(t *testing.T) {
	t.Parallel()
	cause := errors.New("memory limit exceeded")
	tests := []struct {
		name  string
		log   func(Logger)
		level string
		msg   string
		extra map[string]any
	}{
		{
			name:  "debug",
			log:   func(l Logger) { l.Debug("buffer grown", Int("from", 64), Int("to", 128)) },
			level: "debug", msg: "buffer grown",
			extra: map[string]any{"from": float64(64), "to": float64(128)},
		},
		{
			name:  "info",
			log:   func(l Logger) { l.Info("benchmark finished", String("op", "sqrt")) },
			level: "info", msg: "benchmark finished",
			extra: map[string]any{"op": "sqrt"},
		},
		{
			name:  "error",
			log:   func(l Logger) { l.Error("allocation failed", cause, Uint64("requested", 4096)) },
			level: "error", msg: "allocation failed",
			extra: map[string]any{"error": cause.Error(), "requested": float64(4096)},
		},
		{
			name:  "printf",
			log:   func(l Logger) { l.Printf("%d variables saved", 3) },
			level: "info", msg: "3 variables saved",
		},
		{
			name:  "println",
			log:   func(l Logger) { l.Println("session", "loaded") },
			level: "info", msg: "session loaded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))

			entry := decode(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.msg, entry["message"])
			for k, v := range tt.extra {
				assert.Equal(t, v, entry[k], "field %s", k)
			}
		})
	}
}

func TestZerologAdapterFieldTypes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewZerologAdapter(zerolog.New(&buf)).Info("typed",
		Field{Key: "i64", Value: int64(-7)},
		Field{Key: "ok", Value: true},
		Field{Key: "sizes", Value: []int{16, 128}},
	)
	entry := decode(t, &buf)
	assert.Equal(t, float64(-7), entry["i64"])
	assert.Equal(t, true, entry["ok"])
	assert.Equal(t, []any{float64(16), float64(128)}, entry["sizes"])
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "bench").Info("hello")

	entry := decode(t, &buf)
	assert.Equal(t, "bench", entry["component"])
	assert.Contains(t, entry, "time")
}

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "cli").Info("command evaluated", String("command", "add"))

	out := buf.String()
	assert.Contains(t, out, "command evaluated")
	assert.Contains(t, out, "command=add")
	assert.False(t, strings.HasPrefix(out, "{"), "console output is not JSON")
}

func TestNopAndDefaultLoggers(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, NewDefaultLogger())
	nop := NewNopLogger()
	assert.NotPanics(t, func() {
		nop.Debug("x")
		nop.Error("x", errors.New("y"))
		nop.Printf("%s", "z")
	})
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{"debug", func(l Logger) { l.Debug("grow", Int("cap", 128)) }, "[DEBUG] grow cap=128\n"},
		{"info", func(l Logger) { l.Info("ready") }, "[INFO] ready\n"},
		{"error", func(l Logger) { l.Error("sub failed", errors.New("underflow"), String("op", "sub")) },
			"[ERROR] sub failed: underflow op=sub\n"},
		{"printf", func(l Logger) { l.Printf("n=%d", 2) }, "n=2\n"},
		{"println", func(l Logger) { l.Println("a", 1) }, "a 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLoggerInterface(t *testing.T) {
	t.Parallel()
	var _ Logger = (*ZerologAdapter)(nil)
	var _ Logger = (*StdLoggerAdapter)(nil)
}
