package upload

import (
	"fmt"

	"github.com/dmitrymomot/safeupload/pkg/sanitizer"
)

// checkExtension enforces an allow-list on the sanitized name.
// A nil list allows everything; a name without extension never matches a list.
func checkExtension(name string, allowed []string) error {
	if allowed == nil {
		return nil
	}

	ext := sanitizer.Extension(name)
	if ext == "" {
		return fmt.Errorf("%w: %q has no extension", ErrExtensionNotAllowed, name)
	}
	for _, a := range allowed {
		if normalizeExtension(a) == ext {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrExtensionNotAllowed, ext)
}
