package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeupload/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("upload", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "upload", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestUploadAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want any
	}{
		{"component", logger.Component("upload"), "component", "upload"},
		{"category", logger.Category("sketches"), "category", "sketches"},
		{"identifier", logger.Identifier("user-1"), "identifier", "user-1"},
		{"size", logger.Size(512000), "size", int64(512000)},
		{"path", logger.Path("/srv/uploads/a.png"), "path", "/srv/uploads/a.png"},
		{"stage", logger.Stage("Sanitized"), "stage", "Sanitized"},
		{"content type", logger.ContentType("image/png"), "content_type", "image/png"},
		{"service", logger.Service("uploads"), "service", "uploads"},
		{"upload id", logger.UploadID("u-1"), "upload_id", "u-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()
	attr := logger.Filename("evil\nname.png")
	require.Equal(t, "filename", attr.Key)
	assert.Equal(t, `"evil\nname.png"`, attr.Value.String())
}

func TestContentType_Empty(t *testing.T) {
	t.Parallel()
	assert.True(t, logger.ContentType("").Equal(slog.Attr{}))
}
