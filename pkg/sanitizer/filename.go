package sanitizer

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxFilenameLength is the longest basename most filesystems accept, in bytes.
const MaxFilenameLength = 255

// ErrInvalidFilename is returned when nothing usable is left after sanitization.
var ErrInvalidFilename = errors.New("invalid filename")

// unsafeChars are replaced rather than removed so that the shape of the name survives.
var unsafeChars = strings.NewReplacer(
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// reservedNames are Windows device names that cannot be used as a file stem.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Filename turns an untrusted name into a basename that is safe to create on disk.
// The result never contains a path separator or a ".." sequence, is never empty and
// is at most MaxFilenameLength bytes long. Different inputs may map to the same output.
//
// Example:
//
//	name, err := sanitizer.Filename("../../etc/passwd") // "etcpasswd"
//	name, err = sanitizer.Filename("report:final.pdf")  // "report_final.pdf"
//	name, err = sanitizer.Filename("con.txt")           // "_con.txt"
func Filename(name string) (string, error) {
	s := norm.NFC.String(name)
	s = unsafeChars.Replace(s)

	// Removing one class of characters can join neighbours into another
	// (".\x00." becomes ".."), so repeat until nothing changes.
	for {
		prev := s
		s = RemoveNullBytes(s)
		s = RemoveControlChars(s)
		s = StripPathSegments(s)
		if s == prev {
			break
		}
	}

	s = strings.Trim(s, " .")
	if s == "" {
		return "", ErrInvalidFilename
	}

	if stem, _, _ := strings.Cut(s, "."); reservedNames[strings.ToUpper(strings.TrimSpace(stem))] {
		s = "_" + s
	}

	return clampFilename(s, MaxFilenameLength), nil
}

// Extension returns the lower-cased extension of name with a single leading dot,
// or an empty string when name has none.
func Extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "." {
		return ""
	}
	return ext
}

// StripPathSegments removes parent references and both separator styles entirely.
func StripPathSegments(s string) string {
	for strings.Contains(s, "..") || strings.ContainsAny(s, `/\`) {
		s = strings.ReplaceAll(s, "..", "")
		s = strings.ReplaceAll(s, "/", "")
		s = strings.ReplaceAll(s, `\`, "")
	}
	return s
}

// clampFilename truncates the stem on a rune boundary so that the extension survives.
func clampFilename(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	ext := filepath.Ext(s)
	if len(ext) >= limit/2 {
		// An "extension" this long is not one worth keeping.
		ext = ""
	}

	stem := truncateBytes(strings.TrimSuffix(s, ext), limit-len(ext))
	// A stem cut right before its own dot would form ".." with the extension.
	stem = strings.TrimRight(stem, " .")
	if stem == "" {
		stem = "file"
	}

	return stem + ext
}

func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
