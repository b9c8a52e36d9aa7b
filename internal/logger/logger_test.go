package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestInit_FiltersByLevel(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	Init(&buf, "warn")

	Info("hidden")
	Warn("shown", "key", "value")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestWithRequestID(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	Init(&buf, "info")

	WithRequestID("req-1").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
}
