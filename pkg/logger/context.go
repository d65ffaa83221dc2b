package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a record's context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type uploadIDKey struct{}

// WithUploadID returns a context whose log records carry id as upload_id.
func WithUploadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, uploadIDKey{}, id)
}

// UploadIDFromContext returns the upload ID stored by WithUploadID.
func UploadIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(uploadIDKey{}).(string)
	return id, ok && id != ""
}

func uploadIDAttr(ctx context.Context) (slog.Attr, bool) {
	id, ok := UploadIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return UploadID(id), true
}

// contextHandler adds the attributes its extractors find in the record's
// context before passing the record on.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) *contextHandler {
	return &contextHandler{Handler: next, extractors: extractors}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		for _, ex := range h.extractors {
			if a, ok := ex(ctx); ok {
				rec.AddAttrs(a)
			}
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newContextHandler(h.Handler.WithAttrs(attrs), h.extractors)
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return newContextHandler(h.Handler.WithGroup(name), h.extractors)
}
