package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/safeupload/pkg/sanitizer"
)

// uniqueName builds <stem>_<unixmilli>_<8 hex><ext> from a sanitized name.
// The stem is shortened so the result fits sanitizer.MaxFilenameLength; an
// extension too long to leave room for a stem is folded into it and cut too.
func uniqueName(name string, now time.Time) (string, error) {
	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("%w: generating name: %v", ErrStorageIO, err)
	}

	ext := filepath.Ext(name)
	if len(ext) >= sanitizer.MaxFilenameLength/2 {
		ext = ""
	}
	stem := name[:len(name)-len(ext)]
	tail := "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + hex.EncodeToString(suffix[:]) + ext

	stem = truncate(stem, sanitizer.MaxFilenameLength-len(tail))
	if stem == "" {
		stem = "file"
	}
	return stem + tail, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
