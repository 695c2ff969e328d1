package logger

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
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestInitializeTo_JSON(t *testing.T) {
	defer Initialize("info", false)

	var buf bytes.Buffer
	InitializeTo(&buf, "warn", true)

	Log.Info("dropped")
	Log.Warn("kept", "thread_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.EqualValues(t, 7, line["thread_id"])
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Log, FromContext(context.Background()))

	scoped := Log.With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
}
