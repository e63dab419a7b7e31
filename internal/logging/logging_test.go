package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", "info")

	logger.Debug("hidden")
	logger.Info("session created", "session_id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session created", entry["msg"])
	assert.Equal(t, "abc", entry["session_id"])
}

func TestColoredHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", "debug").With("component", "server")

	logger.Debug("scored", "total", 40)

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "scored")
	assert.Contains(t, out, "component")
	assert.Contains(t, out, `"server"`)
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "40")
}

func TestColoredHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", "warn")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestColoredHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", "info").WithGroup("export")

	logger.Info("written", "sink", "file")
	assert.Contains(t, buf.String(), "export.sink")
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	var buf bytes.Buffer
	FromContext(ctx, New(&buf, "text", "info")).Info("handled")
	assert.Contains(t, buf.String(), "[req-1]")
}
