package upload

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/safeupload/pkg/file"
)

// Sniffer classifies content from its leading bytes.
// It reports false when no signature matches.
type Sniffer func(data []byte) (file.Detection, bool)

// signaturelessTypes have no reliable magic number and are accepted on their
// declared type alone.
var signaturelessTypes = map[string]struct{}{
	"text/plain":       {},
	"text/csv":         {},
	"application/csv":  {},
	"text/xml":         {},
	"application/xml":  {},
	"image/svg+xml":    {},
	"application/json": {},
	"text/json":        {},
}

// executableTypes are detected types rejected regardless of the declared type
// or the category's verification setting.
var executableTypes = map[string]struct{}{
	"application/x-executable":  {},
	"application/x-msdownload":  {},
	"application/x-mach-binary": {},
	"text/x-shellscript":        {},
}

const (
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// compatibleTypes lists declared and detected types that name the same format.
// Lookups go both ways.
var compatibleTypes = map[string][]string{
	"image/jpeg":                   {"image/jpg", "image/pjpeg"},
	"image/jpg":                    {"image/pjpeg"},
	"image/bmp":                    {"image/x-bmp", "image/x-ms-bmp"},
	"image/heic":                   {"image/heif", "image/heic-sequence"},
	"image/tiff":                   {"image/tif"},
	"application/zip":              {"application/x-zip-compressed", "application/x-zip", mimeDOCX, mimeXLSX, mimePPTX},
	"application/gzip":             {"application/x-gzip"},
	"application/x-rar-compressed": {"application/vnd.rar", "application/x-rar"},
	"application/x-7z-compressed":  {"application/x-7z"},
	"application/x-ole-storage":    {"application/msword", "application/vnd.ms-excel", "application/vnd.ms-powerpoint"},
	"application/rtf":              {"text/rtf"},
	"video/quicktime":              {"video/mp4"},
	"video/x-msvideo":              {"video/avi", "video/msvideo"},
	"audio/wav":                    {"audio/x-wav", "audio/wave", "audio/vnd.wave"},
	"audio/mpeg":                   {"audio/mp3", "audio/mpeg3"},
	"audio/flac":                   {"audio/x-flac"},
	"audio/mp4":                    {"audio/x-m4a", "audio/m4a"},
}

// compatible reports whether declared and actual name the same format.
func compatible(declared, actual string) bool {
	if declared == actual {
		return true
	}
	return linked(declared, actual) || linked(actual, declared)
}

func linked(from, to string) bool {
	return slices.Contains(compatibleTypes[from], to)
}

// checkContent verifies the bytes against the declared type and returns the
// detected type, empty when nothing was recognized.
func checkContent(data []byte, declaredType string, sniff Sniffer) (string, error) {
	declared := mediaType(declaredType)

	detection, ok := sniff(data)
	if !ok {
		if _, textual := signaturelessTypes[declared]; textual {
			return "", nil
		}
		return "", fmt.Errorf("%w: declared %q", ErrUnrecognizedContent, declared)
	}

	actual := mediaType(detection.MIME)
	if err := checkExecutable(actual); err != nil {
		return actual, err
	}
	if !compatible(declared, actual) {
		return actual, &MismatchError{Declared: declared, Actual: actual}
	}
	return actual, nil
}

// checkExecutable rejects executable content.
func checkExecutable(actual string) error {
	if _, ok := executableTypes[actual]; ok {
		return fmt.Errorf("%w: content is %s", ErrDangerousFileType, actual)
	}
	return nil
}

// checkUnverified is the content gate for categories without verification:
// only executable signatures are rejected.
func checkUnverified(data []byte, sniff Sniffer) error {
	if detection, ok := sniff(data); ok {
		return checkExecutable(mediaType(detection.MIME))
	}
	return nil
}
