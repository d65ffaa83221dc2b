package upload

import (
	"time"

	"github.com/google/uuid"
)

// Record describes a stored upload. The business-record layer persists it;
// this package never does.
type Record struct {
	ID               uuid.UUID `json:"id"`
	Category         Category  `json:"category"`
	Filename         string    `json:"filename"`          // Unique stored name
	OriginalFilename string    `json:"original_filename"` // As received, unsanitized
	StoragePath      string    `json:"storage_path"`      // Absolute path or s3:// URI
	RelativePath     string    `json:"relative_path"`     // Slash-separated, relative to the storage root
	PublicPath       string    `json:"public_path"`       // RelativePath with one leading slash
	Size             int64     `json:"size"`
	DeclaredType     string    `json:"declared_type"`
	SniffedType      string    `json:"sniffed_type,omitempty"` // Empty when content was not verified
	CreatedAt        time.Time `json:"created_at"`
}
