package upload

import (
	"fmt"
	"strings"
)

// Category is a named upload destination with its own storage subpath and
// validation profile. The set is closed.
type Category uint8

const (
	Sketches Category = iota
	GeneratedSamples
	CollectionImagery
	Documents
	ProductionEvidence
	Temporary
	LibraryImages
	LibraryVideos
	LibraryDocuments
	LibraryMisc

	categoryCount
)

const mb = 1 << 20

type categoryEntry struct {
	key     string
	subpath string
	profile *Profile // nil: DefaultProfile
}

var categoryTable = [...]categoryEntry{
	Sketches: {
		key:     "sketches",
		subpath: "sketches",
		profile: &Profile{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"},
			MaxSize:           10 * mb,
			VerifyContent:     true,
		},
	},
	GeneratedSamples: {
		key:     "generated-samples",
		subpath: "generated-samples",
		profile: &Profile{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
			MaxSize:           20 * mb,
			VerifyContent:     true,
		},
	},
	CollectionImagery: {
		key:     "collection-imagery",
		subpath: "collections/imagery",
		profile: &Profile{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
			MaxSize:           20 * mb,
			VerifyContent:     true,
		},
	},
	Documents: {
		key:     "documents",
		subpath: "documents",
		profile: &Profile{
			AllowedExtensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf"},
			MaxSize:           25 * mb,
			VerifyContent:     true,
		},
	},
	ProductionEvidence: {
		key:     "production-evidence",
		subpath: "production/evidence",
		profile: &Profile{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp", ".heic", ".pdf", ".mp4", ".mov"},
			MaxSize:           50 * mb,
			VerifyContent:     true,
		},
	},
	Temporary: {
		key:     "temporary",
		subpath: "temp",
	},
	LibraryImages: {
		key:     "library-images",
		subpath: "library/images",
		profile: &Profile{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".avif"},
			MaxSize:           20 * mb,
			VerifyContent:     true,
		},
	},
	LibraryVideos: {
		key:     "library-videos",
		subpath: "library/videos",
		profile: &Profile{
			AllowedExtensions: []string{".mp4", ".webm", ".mov"},
			MaxSize:           500 * mb,
			VerifyContent:     true,
		},
	},
	LibraryDocuments: {
		key:     "library-documents",
		subpath: "library/documents",
		profile: &Profile{
			AllowedExtensions: []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".csv", ".rtf"},
			MaxSize:           50 * mb,
			VerifyContent:     true,
		},
	},
	LibraryMisc: {
		key:     "library-misc",
		subpath: "library/misc",
	},
}

// Adding a Category constant without a table row, or a row without a
// constant, fails to compile.
var (
	_ [int(categoryCount) - len(categoryTable)]struct{}
	_ [len(categoryTable) - int(categoryCount)]struct{}
)

// Categories returns every category in declaration order.
func Categories() []Category {
	all := make([]Category, 0, categoryCount)
	for c := range categoryCount {
		all = append(all, c)
	}
	return all
}

// ParseCategory maps a category key such as "library-images" to its Category.
func ParseCategory(key string) (Category, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for c, entry := range categoryTable {
		if entry.key == key {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c < categoryCount
}

// String returns the category key.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryTable[c].key
}

// Subpath returns the slash-separated directory below the storage root.
func (c Category) Subpath() string {
	if !c.Valid() {
		return ""
	}
	return categoryTable[c].subpath
}

// Profile returns the built-in validation profile of c.
// Categories without an explicit profile get DefaultProfile.
func (c Category) Profile() Profile {
	if !c.Valid() || categoryTable[c].profile == nil {
		return DefaultProfile()
	}
	return categoryTable[c].profile.clone()
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
