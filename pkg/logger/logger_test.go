package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(buf, &Options{Level: level, TimeFormat: "15:04", NoColor: true}))
}

func TestHandlerWritesPlainLine(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	log.With("component", "backend").WarnContext(ctx, "Sending", "status", 403, Err(errors.New("boom")))

	line := buf.String()
	assert.Contains(t, line, "req-1 WARN  | Sending")
	assert.Contains(t, line, "component=backend")
	assert.Contains(t, line, "status=403")
	assert.Contains(t, line, "err=boom")
	assert.NotContains(t, line, "\x1b[")
}

func TestHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("shown")
	assert.Contains(t, buf.String(), "INFO  | shown")
}

func TestHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	log.WithGroup("http").Info("done", "status", 200)
	assert.Contains(t, buf.String(), "http.status=200")
}

func TestRequestIDFromContext(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestHandlerGroupSkipsEarlierAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	log.With("component", "backend").WithGroup("http").With("method", "GET").Info("done", "status", 200)

	line := buf.String()
	assert.Contains(t, line, " component=backend")
	assert.NotContains(t, line, "http.component")
	assert.Contains(t, line, "http.method=GET")
	assert.Contains(t, line, "http.status=200")
}

func TestHandlerFollowsColorDetection(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &Options{Level: slog.LevelInfo, TimeFormat: "15:04"}))

	log.Error("failed", Err(errors.New("boom")))
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "ERROR | failed err=boom")
}
