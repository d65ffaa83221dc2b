package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSize is the ceiling applied when a profile sets none.
const DefaultMaxSize int64 = 100 * mb

// Profile holds the validation settings of a category.
type Profile struct {
	// AllowedExtensions restricts names to these extensions. Nil means no restriction.
	AllowedExtensions []string
	// MaxSize is the size ceiling in bytes. Zero or less means DefaultMaxSize.
	MaxSize int64
	// VerifyContent enables content sniffing against the declared type.
	VerifyContent bool
}

// DefaultProfile is the lower-security tier used by internal flows:
// no allow-list, 100 MB and no content verification.
func DefaultProfile() Profile {
	return Profile{MaxSize: DefaultMaxSize}
}

// Limit returns the effective size ceiling.
func (p Profile) Limit() int64 {
	if p.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return p.MaxSize
}

func (p Profile) clone() Profile {
	p.AllowedExtensions = slices.Clone(p.AllowedExtensions)
	return p
}

// profileOverride is one entry of a profiles file. Absent fields keep the
// category's built-in value.
type profileOverride struct {
	AllowedExtensions *[]string `yaml:"allowed_extensions"`
	MaxSize           *int64    `yaml:"max_size"`
	VerifyContent     *bool     `yaml:"verify_content"`
}

// LoadProfiles parses profile overrides from YAML keyed by category key:
//
//	library-images:
//	  allowed_extensions: [.png, .jpg]
//	  max_size: 5242880
//	documents:
//	  verify_content: false
//
// Unknown category keys and unknown fields are rejected. The result holds the
// complete merged profile for every overridden category.
func LoadProfiles(r io.Reader) (map[Category]Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc map[string]profileOverride
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfiles, err)
	}

	profiles := make(map[Category]Profile, len(doc))
	for key, override := range doc {
		c, err := ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProfiles, err)
		}

		p := c.Profile()
		if override.AllowedExtensions != nil {
			exts := make([]string, 0, len(*override.AllowedExtensions))
			for _, ext := range *override.AllowedExtensions {
				if ext = normalizeExtension(ext); ext == "" {
					return nil, fmt.Errorf("%w: %s: empty extension", ErrInvalidProfiles, key)
				}
				exts = append(exts, ext)
			}
			p.AllowedExtensions = exts
		}
		if override.MaxSize != nil {
			if *override.MaxSize <= 0 {
				return nil, fmt.Errorf("%w: %s: max_size must be positive", ErrInvalidProfiles, key)
			}
			p.MaxSize = *override.MaxSize
		}
		if override.VerifyContent != nil {
			p.VerifyContent = *override.VerifyContent
		}
		profiles[c] = p
	}

	return profiles, nil
}

// LoadProfilesFile reads profile overrides from a YAML file.
func LoadProfilesFile(path string) (map[Category]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfiles, err)
	}
	return LoadProfiles(bytes.NewReader(data))
}

// normalizeExtension lower-cases ext and gives it exactly one leading dot.
func normalizeExtension(ext string) string {
	ext = strings.TrimLeft(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}
