package upload

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/safeupload/pkg/ratelimiter"
	"github.com/dmitrymomot/safeupload/pkg/sanitizer"
)

// Rejection reasons. Every failed upload matches exactly one of them with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid upload input")
	ErrRateLimitExceeded   = ratelimiter.ErrRateLimitExceeded
	ErrCancelled           = errors.New("upload cancelled")
	ErrInvalidFilename     = sanitizer.ErrInvalidFilename
	ErrFileTooLarge        = errors.New("file too large")
	ErrDangerousFileType   = errors.New("dangerous file type")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrUnrecognizedContent = errors.New("unrecognized file content")
	ErrContentTypeMismatch = errors.New("content does not match declared type")
	ErrSuspiciousArchive   = errors.New("suspicious archive")
	ErrStorageIO           = errors.New("storage failure")
)

var (
	// ErrUnknownCategory is an ErrInvalidInput for keys or values outside the category set.
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrInvalidInput)

	// ErrInvalidProfiles is returned for malformed profile override documents.
	ErrInvalidProfiles = errors.New("invalid profile overrides")

	// ErrInvalidConfig is returned when a Service cannot be built from its inputs.
	ErrInvalidConfig = errors.New("invalid upload configuration")
)

// SizeError reports the size of a file that exceeded its ceiling.
type SizeError struct {
	Size  int64
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds limit of %d bytes", ErrFileTooLarge, e.Size, e.Limit)
}

func (e *SizeError) Unwrap() error { return ErrFileTooLarge }

// MismatchError reports a declared content type that the bytes contradict.
type MismatchError struct {
	Declared string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: declared %q, detected %q", ErrContentTypeMismatch, e.Declared, e.Actual)
}

func (e *MismatchError) Unwrap() error { return ErrContentTypeMismatch }

// RejectedError is returned by Service.Upload for every failure.
// Stage is the last stage the upload completed before the failing gate.
type RejectedError struct {
	Stage Stage
	Err   error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upload rejected after %s: %v", e.Stage, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }
