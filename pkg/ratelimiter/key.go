package ratelimiter

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// Key joins the non-empty parts into one rate limit key.
// Long keys (>64 chars) are hashed using FNV-1a for storage efficiency.
func Key(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}

	if len(clean) == 0 {
		return ""
	}

	combined := strings.Join(clean, ":")
	if len(combined) <= maxKeyLength {
		return combined
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(combined))
	// Base36 encoding for compact output (~13 chars)
	return strconv.FormatUint(h.Sum64(), 36)
}
