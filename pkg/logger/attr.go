package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Category records an upload category key under the key "category".
func Category(key string) slog.Attr {
	return slog.String("category", key)
}

// Identifier records the rate-limit identifier of the caller under the key "identifier".
func Identifier(id string) slog.Attr {
	return slog.String("identifier", id)
}

// Filename records a file name under the key "filename".
// Untrusted names are quoted so control characters cannot forge log lines.
func Filename(name string) slog.Attr {
	return slog.String("filename", strconv.Quote(name))
}

// Stage records the last pipeline stage an upload reached under the key "stage".
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// Size records a byte count under the key "size".
func Size(n int64) slog.Attr {
	return slog.Int64("size", n)
}

// Path records a storage path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// ContentType records a MIME type under the key "content_type".
// If contentType is empty, it returns an empty Attr.
func ContentType(contentType string) slog.Attr {
	if contentType == "" {
		return slog.Attr{}
	}
	return slog.String("content_type", contentType)
}

// Service records the service name under the key "service".
func Service(name string) slog.Attr {
	return slog.String("service", name)
}

// UploadID records the identifier of one upload attempt under the key "upload_id".
func UploadID(id string) slog.Attr {
	return slog.String("upload_id", id)
}
