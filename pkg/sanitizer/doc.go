// Package sanitizer turns untrusted file names into names that are safe to create on disk.
//
// Filename applies, in order: Unicode NFC normalization, substitution of characters that
// are illegal on common filesystems, removal of parent references, separators, null bytes
// and control characters, trimming of surrounding dots and spaces, and a prefix for
// reserved device names. The result is clamped to MaxFilenameLength bytes, truncating the
// stem and keeping the extension.
//
//	name, err := sanitizer.Filename(header.Filename)
//	if err != nil {
//		// errors.Is(err, sanitizer.ErrInvalidFilename)
//	}
//
// Sanitization is not injective: "a/b.txt" and "ab.txt" both become "ab.txt". Callers that
// store files must generate unique names themselves.
//
// All helpers are pure and safe for concurrent use.
package sanitizer
