package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeupload/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	log.Debug("hidden")
	log.Info("upload accepted", logger.Category("sketches"), logger.Size(42))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "upload accepted", entries[0]["msg"])
	assert.Equal(t, "sketches", entries[0]["category"])
	assert.EqualValues(t, 42, entries[0]["size"])
}

func TestNew_Environment(t *testing.T) {
	t.Parallel()

	t.Run("development logs text at debug level", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(logger.Development, "uploads"), logger.WithOutput(buf))
		log.Debug("checking", logger.Stage("sanitized"))

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=uploads")
		assert.Contains(t, out, "env=development")
		assert.Contains(t, out, "stage=sanitized")
	})

	t.Run("production logs json at info level", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(logger.Production, "uploads"), logger.WithOutput(buf))
		log.Debug("hidden")
		log.Warn("upload rejected")

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "uploads", entries[0]["service"])
		assert.Equal(t, "production", entries[0]["env"])
	})

	t.Run("level given after the environment wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment(logger.Staging, ""),
			logger.WithLevel(slog.LevelError),
			logger.WithOutput(buf),
		)
		log.Warn("hidden")
		log.Error("storage failure")

		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "staging", entries[0]["env"])
		assert.NotContains(t, entries[0], "service")
	})
}

func TestNew_FormatAndAttrs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithFormat("xml"),
		logger.WithOutput(nil),
		logger.WithOutput(buf),
		logger.WithAttr(logger.Component("upload")),
	)
	log.Info("ready")

	assert.Contains(t, buf.String(), "component=upload")
	assert.Contains(t, buf.String(), "msg=ready")
}

func TestParseEnvironment(t *testing.T) {
	t.Parallel()

	tests := map[string]logger.Environment{
		"":            logger.Development,
		"dev":         logger.Development,
		"Development": logger.Development,
		"stage":       logger.Staging,
		"staging":     logger.Staging,
		" prod ":      logger.Production,
		"production":  logger.Production,
	}
	for in, want := range tests {
		got, err := logger.ParseEnvironment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseEnvironment("qa")
	assert.ErrorIs(t, err, logger.ErrInvalidEnvironment)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok, err := logger.ParseLevel("warn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok, err = logger.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)

	_, ok, err = logger.ParseLevel("  ")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = logger.ParseLevel("loud")
	assert.ErrorIs(t, err, logger.ErrInvalidLevel)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() { log.Error("dropped", logger.Error(assert.AnError)) })
}
