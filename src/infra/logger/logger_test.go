package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udin/src/infra/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestPlainHandler_ComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "plain"}, &buf)

	WithComponent(log, "database").Info("pool ready", "max_conns", 10)

	assert.Equal(t, "INFO [database] pool ready max_conns=10\n", buf.String())
}

func TestPlainHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "warn", Format: "plain"}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	assert.Equal(t, "WARN shown\n", buf.String())
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	WithRequestID(log, "abc").Info("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "abc", rec["request_id"])
}

func TestNilGuards(t *testing.T) {
	assert.NotPanics(t, func() {
		Error(nil, "x")
		Debug(nil, "x")
	})

	v, err := Timed(nil, "load", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "debug", Format: "plain"}, &buf)

	v, err := Timed(log, "load", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, strings.HasPrefix(buf.String(), "DEBUG load completed duration_ms="))

	buf.Reset()
	boom := errors.New("boom")
	_, err = Timed(log, "load", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "ERROR load failed")
	assert.Contains(t, buf.String(), "error=boom")
}
