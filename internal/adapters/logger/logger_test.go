package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/featcalc/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing uncolored output to a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name string
		log  func(*logger.Logger)
		want string
	}{
		{"info", func(l *logger.Logger) { l.Info("some message") }, "some message\n"},
		{"warn", func(l *logger.Logger) { l.Warn("some warning") }, "! some warning\n"},
		{"debug filtered", func(l *logger.Logger) { l.Debug("hidden") }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetLevel(slog.LevelDebug)
	lg.Debug("created object cache")

	assert.Equal(t, "● created object cache\n", buf.String())

	buf.Reset()
	lg.SetLevel(slog.LevelWarn)
	lg.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_Error_Chain(t *testing.T) {
	lg, buf := newTestLogger(t)
	err := zerr.With(zerr.Wrap(errors.New("permission denied"), "failed to read config file"), "path", "features.yaml")
	lg.Error(zerr.Wrap(err, "failed to load configuration"))

	want := "✗ Error: failed to load configuration\n" +
		"\n" +
		"  Caused by:\n" +
		"    → failed to read config file (path=features.yaml)\n" +
		"    → permission denied\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_PlainError(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(errors.New("boom"))

	assert.Equal(t, "✗ Error: boom\n", buf.String())
}

func TestLogger_SetJSON_WithMetadata(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	inner := zerr.With(zerr.Wrap(errors.New("no such file"), "failed to read dataset"), "path", "cells.yaml")
	lg.Error(zerr.With(zerr.Wrap(inner, "failed to load input"), "row", 3))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "cells.yaml", record["path"])
	assert.InDelta(t, 3, record["row"], 0)
	assert.Contains(t, record["error"], "failed to load input: failed to read dataset: no such file")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetJSON(true)
	other := &bytes.Buffer{}
	lg.SetOutput(other)
	lg.Info("json line")

	assert.Empty(t, buf.String())
	assert.Contains(t, other.String(), `"msg":"json line"`)

	other.Reset()
	lg.SetJSON(false)
	lg.Info("pretty line")
	assert.Equal(t, "pretty line\n", other.String())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	t.Run("debug", func(t *testing.T) {
		t.Setenv(logger.LevelEnv, "debug")
		lg, err := logger.FromEnv()
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		lg.SetOutput(buf)
		lg.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(logger.LevelEnv, "")
		lg, err := logger.FromEnv()
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		lg.SetOutput(buf)
		lg.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(logger.LevelEnv, "loud")
		_, err := logger.FromEnv()
		require.Error(t, err)

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok)
		assert.Equal(t, "loud", zErr.Metadata()[logger.LevelEnv])
	})
}
