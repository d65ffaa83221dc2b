package upload

import "fmt"

// MinArchiveSize is the smallest compressed payload accepted for archive types.
// Anything smaller is treated as a possible decompression bomb.
const MinArchiveSize = 10 << 10

var archiveTypes = map[string]struct{}{
	"application/zip":              {},
	"application/x-zip-compressed": {},
	"application/x-rar-compressed": {},
	"application/vnd.rar":          {},
	"application/x-7z-compressed":  {},
	"application/gzip":             {},
	"application/x-gzip":           {},
	"application/x-tar":            {},
	"application/x-bzip2":          {},
	"application/x-xz":             {},
}

// checkArchive flags archives below MinArchiveSize. It does not decompress.
func checkArchive(data []byte, declaredType string) error {
	mt := mediaType(declaredType)
	if _, ok := archiveTypes[mt]; !ok {
		return nil
	}
	if len(data) < MinArchiveSize {
		return fmt.Errorf("%w: %s of %d bytes is below the %d byte floor", ErrSuspiciousArchive, mt, len(data), MinArchiveSize)
	}
	return nil
}
