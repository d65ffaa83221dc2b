package sanitizer

import (
	"strings"
	"unicode"
)

// RemoveNullBytes removes null bytes that could cause issues in C-based systems.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// RemoveControlChars removes control characters and invisible format characters.
// Format characters include bidirectional overrides, which can make a name such as
// "photo\u202egnp.exe" render as "photoexe.png".
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}
