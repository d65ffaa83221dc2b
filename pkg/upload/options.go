package upload

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithSniffer replaces the content classifier. Nil is ignored.
func WithSniffer(sniff Sniffer) Option {
	return func(s *Service) {
		if sniff != nil {
			s.sniff = sniff
		}
	}
}

// WithClock sets the time source used for names and records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithProfileOverrides replaces the built-in profile of the given categories,
// typically with the result of LoadProfilesFile.
func WithProfileOverrides(profiles map[Category]Profile) Option {
	return func(s *Service) {
		for c, p := range profiles {
			if c.Valid() {
				s.profiles[c] = p.clone()
			}
		}
	}
}

// UploadOption adjusts a single Upload call.
type UploadOption func(*uploadOptions)

type uploadOptions struct {
	identifier        string
	allowedExtensions *[]string
	maxSize           *int64
	verifyContent     *bool
}

// WithIdentifier sets the rate-limit identifier of the caller.
// Blank identifiers fall back to AnonymousIdentifier.
func WithIdentifier(id string) UploadOption {
	return func(o *uploadOptions) {
		if id = strings.TrimSpace(id); id != "" {
			o.identifier = id
		}
	}
}

// WithAllowedExtensions overrides the category allow-list for this call.
// Calling it without arguments removes the restriction.
func WithAllowedExtensions(exts ...string) UploadOption {
	return func(o *uploadOptions) {
		var list []string
		if exts != nil {
			list = slices.Clone(exts)
		}
		o.allowedExtensions = &list
	}
}

// WithMaxSize overrides the category size ceiling for this call.
func WithMaxSize(n int64) UploadOption {
	return func(o *uploadOptions) {
		o.maxSize = &n
	}
}

// WithContentVerification overrides the category verification flag for this call.
func WithContentVerification(enabled bool) UploadOption {
	return func(o *uploadOptions) {
		o.verifyContent = &enabled
	}
}

func (o uploadOptions) apply(p Profile) Profile {
	if o.allowedExtensions != nil {
		p.AllowedExtensions = *o.allowedExtensions
	}
	if o.maxSize != nil {
		p.MaxSize = *o.maxSize
	}
	if o.verifyContent != nil {
		p.VerifyContent = *o.verifyContent
	}
	return p
}
