package file

import (
	"bytes"
	"net/http"
	"strings"
)

// Detection is the result of classifying content by its leading bytes.
type Detection struct {
	MIME       string
	Confidence float64 // 1.0 for long, unambiguous signatures; lower for short ones
}

// signature describes a magic number at a fixed offset.
// refine, when set, inspects the data further and may return a more specific
// type or "" to reject the match.
type signature struct {
	mime       string
	offset     int
	magic      []byte
	confidence float64
	refine     func(data []byte) string
}

// signatures is ordered by specificity: the first match wins.
// Text formats (plain text, CSV, JSON, XML, SVG) have no reliable signature and are
// deliberately absent.
var signatures = []signature{
	// Images
	{mime: "image/png", magic: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, confidence: 1},
	{mime: "image/jpeg", magic: []byte{0xFF, 0xD8, 0xFF}, confidence: 0.9},
	{mime: "image/gif", magic: []byte("GIF87a"), confidence: 1},
	{mime: "image/gif", magic: []byte("GIF89a"), confidence: 1},
	{mime: "image/tiff", magic: []byte{'I', 'I', 0x2A, 0x00}, confidence: 0.8},
	{mime: "image/tiff", magic: []byte{'M', 'M', 0x00, 0x2A}, confidence: 0.8},
	{mime: "image/bmp", magic: []byte("BM"), confidence: 0.6, refine: refineBMP},
	{mime: "RIFF", magic: []byte("RIFF"), confidence: 0.9, refine: refineRIFF},
	{mime: "ftyp", offset: 4, magic: []byte("ftyp"), confidence: 0.9, refine: refineFtyp},

	// Documents
	{mime: "application/pdf", magic: []byte("%PDF-"), confidence: 1},
	{mime: "application/x-ole-storage", magic: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, confidence: 1},
	{mime: "application/rtf", magic: []byte(`{\rtf`), confidence: 1},
	{mime: "application/vnd.sqlite3", magic: []byte("SQLite format 3\x00"), confidence: 1},

	// Archives
	{mime: "application/zip", magic: []byte{'P', 'K', 0x03, 0x04}, confidence: 0.9, refine: refineZip},
	{mime: "application/zip", magic: []byte{'P', 'K', 0x05, 0x06}, confidence: 0.9},
	{mime: "application/zip", magic: []byte{'P', 'K', 0x07, 0x08}, confidence: 0.9},
	{mime: "application/gzip", magic: []byte{0x1F, 0x8B, 0x08}, confidence: 0.9},
	{mime: "application/x-tar", offset: 257, magic: []byte("ustar"), confidence: 1},
	{mime: "application/x-rar-compressed", magic: []byte("Rar!\x1a\x07\x00"), confidence: 1},
	{mime: "application/x-rar-compressed", magic: []byte("Rar!\x1a\x07\x01\x00"), confidence: 1},
	{mime: "application/x-7z-compressed", magic: []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}, confidence: 1},
	{mime: "application/x-bzip2", magic: []byte("BZh"), confidence: 0.8},
	{mime: "application/x-xz", magic: []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, confidence: 1},

	// Audio
	{mime: "audio/mpeg", magic: []byte("ID3"), confidence: 0.8},
	{mime: "audio/mpeg", magic: []byte{0xFF, 0xFB}, confidence: 0.5},
	{mime: "audio/mpeg", magic: []byte{0xFF, 0xF3}, confidence: 0.5},
	{mime: "audio/mpeg", magic: []byte{0xFF, 0xF2}, confidence: 0.5},
	{mime: "audio/flac", magic: []byte("fLaC"), confidence: 1},
	{mime: "audio/ogg", magic: []byte("OggS"), confidence: 1},
	{mime: "audio/midi", magic: []byte("MThd"), confidence: 1},

	// Video
	{mime: "video/webm", magic: []byte{0x1A, 0x45, 0xDF, 0xA3}, confidence: 0.9},
	{mime: "video/x-flv", magic: []byte("FLV\x01"), confidence: 1},

	// Fonts
	{mime: "font/woff", magic: []byte("wOFF"), confidence: 1},
	{mime: "font/woff2", magic: []byte("wOF2"), confidence: 1},

	// Executables and scripts, detected so they can never pass as something else
	{mime: "application/x-executable", magic: []byte{0x7F, 'E', 'L', 'F'}, confidence: 1},
	{mime: "application/x-mach-binary", magic: []byte{0xCF, 0xFA, 0xED, 0xFE}, confidence: 1},
	{mime: "application/x-mach-binary", magic: []byte{0xCE, 0xFA, 0xED, 0xFE}, confidence: 1},
	{mime: "application/x-mach-binary", magic: []byte{0xFE, 0xED, 0xFA, 0xCF}, confidence: 1},
	{mime: "application/x-mach-binary", magic: []byte{0xFE, 0xED, 0xFA, 0xCE}, confidence: 1},
	{mime: "application/x-msdownload", magic: []byte("MZ"), confidence: 0.8},
	{mime: "text/x-shellscript", magic: []byte("#!/"), confidence: 0.9},
}

// Detect classifies data by its leading bytes, independent of any name or
// declared type. Reports false when no signature matches.
//
// Example:
//
//	d, ok := file.Detect(data)
//	if ok && d.MIME == "image/png" {
//	    // real PNG
//	}
func Detect(data []byte) (Detection, bool) {
	for _, sig := range signatures {
		end := sig.offset + len(sig.magic)
		if end > len(data) || !bytes.Equal(data[sig.offset:end], sig.magic) {
			continue
		}

		mime := sig.mime
		if sig.refine != nil {
			mime = sig.refine(data)
			if mime == "" {
				continue
			}
		}

		return Detection{MIME: mime, Confidence: sig.confidence}, true
	}

	return Detection{}, false
}

// DetectContentType is Detect with a fallback to http.DetectContentType, for
// callers that want a best guess rather than a verdict.
func DetectContentType(data []byte) string {
	if d, ok := Detect(data); ok {
		return d.MIME
	}
	ct := http.DetectContentType(data)
	if idx := strings.Index(ct, ";"); idx > 0 {
		ct = ct[:idx]
	}
	return ct
}

// refineBMP requires the reserved header bytes to be zero so that text
// starting with "BM" is not taken for a bitmap.
func refineBMP(data []byte) string {
	if len(data) < 14 {
		return ""
	}
	for _, b := range data[6:10] {
		if b != 0 {
			return ""
		}
	}
	return "image/bmp"
}

// refineRIFF resolves the RIFF container by its form type at offset 8.
func refineRIFF(data []byte) string {
	if len(data) < 12 {
		return ""
	}
	switch string(data[8:12]) {
	case "WEBP":
		return "image/webp"
	case "WAVE":
		return "audio/wav"
	case "AVI ":
		return "video/x-msvideo"
	default:
		return ""
	}
}

// refineFtyp resolves ISO base media files by their major brand.
func refineFtyp(data []byte) string {
	if len(data) < 12 {
		return ""
	}
	brand := string(data[8:12])
	switch {
	case brand == "heic", brand == "heix", brand == "mif1", brand == "msf1", brand == "hevc":
		return "image/heic"
	case brand == "avif", brand == "avis":
		return "image/avif"
	case brand == "qt  ":
		return "video/quicktime"
	case brand == "M4A ", brand == "M4B ":
		return "audio/mp4"
	case strings.HasPrefix(brand, "3g"):
		return "video/3gpp"
	default:
		return "video/mp4"
	}
}

// zipProbeLimit bounds how far into an archive refineZip looks for OOXML parts.
const zipProbeLimit = 64 << 10

// refineZip tells Office Open XML documents apart from plain archives by the
// part names stored in the leading local file headers.
func refineZip(data []byte) string {
	head := data[:min(len(data), zipProbeLimit)]
	switch {
	case bytes.Contains(head, []byte("word/")):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case bytes.Contains(head, []byte("xl/")):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case bytes.Contains(head, []byte("ppt/")):
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	default:
		return "application/zip"
	}
}
