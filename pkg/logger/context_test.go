package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeupload/pkg/logger"
)

type tenantKey struct{}

func TestUploadIDFromContext(t *testing.T) {
	t.Parallel()

	_, ok := logger.UploadIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = logger.UploadIDFromContext(logger.WithUploadID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := logger.UploadIDFromContext(logger.WithUploadID(context.Background(), "u-1"))
	assert.True(t, ok)
	assert.Equal(t, "u-1", id)
}

func TestNew_ContextAttributes(t *testing.T) {
	t.Parallel()

	tenant := func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(tenantKey{}).(string)
		return slog.String("tenant", v), ok
	}

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(nil, tenant))

	ctx := logger.WithUploadID(context.Background(), "u-42")
	ctx = context.WithValue(ctx, tenantKey{}, "acme")

	log.InfoContext(ctx, "file uploaded")
	log.With(logger.Component("upload")).WarnContext(ctx, "upload rejected")
	log.WithGroup("file").InfoContext(ctx, "grouped", logger.Path("temp/a.txt"))
	log.Info("no context values")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 4)

	assert.Equal(t, "u-42", entries[0]["upload_id"])
	assert.Equal(t, "acme", entries[0]["tenant"])

	assert.Equal(t, "u-42", entries[1]["upload_id"])
	assert.Equal(t, "upload", entries[1]["component"])

	group, ok := entries[2]["file"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "temp/a.txt", group["path"])
	assert.Equal(t, "u-42", group["upload_id"])

	assert.NotContains(t, entries[3], "upload_id")
	assert.NotContains(t, entries[3], "tenant")
}
