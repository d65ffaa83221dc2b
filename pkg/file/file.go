package file

import (
	"context"
	"path"
	"strings"
)

// Object describes bytes committed to a storage backend.
type Object struct {
	Key  string // Slash-separated path relative to the storage root
	Path string // Absolute filesystem path, or s3://bucket/key for object storage
	Size int64
}

// Storage is the write side of an upload backend.
type Storage interface {
	// EnsureDir makes sure dir exists below the root. Concurrent creation of the
	// same directory is not an error.
	EnsureDir(ctx context.Context, dir string) error
	// Write stores data under key and never replaces an existing object.
	// Once started, a write is not interrupted by ctx cancellation.
	Write(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
	// Delete removes the object at p, relative to the root or absolute inside it.
	// Reports false without error when nothing was there.
	Delete(ctx context.Context, p string) (bool, error)
	// Root returns the absolute root every key is resolved against.
	Root() string
}

// PublicPath builds the public path of a key: the key with exactly one leading slash.
//
// Example:
//
//	file.PublicPath("sketches/a.png") // "/sketches/a.png"
func PublicPath(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	return "/" + strings.TrimLeft(path.Clean("/"+key), "/")
}
