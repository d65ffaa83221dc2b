package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/safeupload/pkg/file"
	"github.com/dmitrymomot/safeupload/pkg/logger"
	"github.com/dmitrymomot/safeupload/pkg/ratelimiter"
	"github.com/dmitrymomot/safeupload/pkg/sanitizer"
)

// AnonymousIdentifier is the rate-limit bucket shared by callers without an identifier.
const AnonymousIdentifier = "anonymous"

const (
	component      = "upload"
	rateLimitScope = "upload"
)

// Service validates untrusted uploads and commits accepted ones to storage.
// It is safe for concurrent use; each Upload runs its gates sequentially.
type Service struct {
	storage  file.Storage
	limiter  *ratelimiter.Limiter
	logger   *slog.Logger
	sniff    Sniffer
	now      func() time.Time
	profiles map[Category]Profile
	closers  []func()
}

// NewService creates an upload service writing to storage and throttled by limiter.
func NewService(storage file.Storage, limiter *ratelimiter.Limiter, opts ...Option) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is required", ErrInvalidConfig)
	}
	if limiter == nil {
		return nil, fmt.Errorf("%w: rate limiter is required", ErrInvalidConfig)
	}

	s := &Service{
		storage:  storage,
		limiter:  limiter,
		logger:   logger.Discard(),
		sniff:    file.Detect,
		now:      time.Now,
		profiles: make(map[Category]Profile),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close releases resources the service created itself, such as the rate
// limiter store built by New. Injected dependencies are left alone.
func (s *Service) Close() {
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
}

// Root returns the storage root every relative path resolves against.
func (s *Service) Root() string {
	return s.storage.Root()
}

// Profile returns the effective profile of c, including configured overrides.
func (s *Service) Profile(c Category) Profile {
	if p, ok := s.profiles[c]; ok {
		return p.clone()
	}
	return c.Profile()
}

// Upload runs in through every gate and stores it under the category subpath.
// Any failure is a *RejectedError naming the last stage passed; the wrapped
// error matches one of the package's Err values. Cancellation of ctx is
// observed before the rate-limited work starts and again before the content
// is read. Storage writes always run to completion.
func (s *Service) Upload(ctx context.Context, category Category, in IncomingFile, opts ...UploadOption) (*Record, error) {
	o := uploadOptions{identifier: AnonymousIdentifier}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.New()
	ctx = logger.WithUploadID(ctx, id.String())

	stage := StageReceived
	reject := func(err error) (*Record, error) {
		s.logger.WarnContext(ctx, "upload rejected",
			logger.Component(component),
			logger.Category(category.String()),
			logger.Identifier(o.identifier),
			logger.Filename(in.Name),
			logger.Stage(stage.String()),
			logger.Error(err),
		)
		return nil, &RejectedError{Stage: stage, Err: err}
	}

	if !category.Valid() {
		return reject(fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(category)))
	}
	if in.Name == "" || in.Content == nil {
		return reject(fmt.Errorf("%w: file name and content are required", ErrInvalidInput))
	}
	if in.Size < 0 {
		return reject(fmt.Errorf("%w: negative size %d", ErrInvalidInput, in.Size))
	}
	profile := o.apply(s.Profile(category))
	limit := profile.Limit()

	if _, err := s.limiter.Consume(ctx, ratelimiter.Key(rateLimitScope, o.identifier)); err != nil {
		return reject(err)
	}
	stage = StageRateChecked

	if err := ctx.Err(); err != nil {
		return reject(fmt.Errorf("%w: %w", ErrCancelled, err))
	}

	name, err := sanitizer.Filename(in.Name)
	if err != nil {
		return reject(err)
	}
	stage = StageSanitized

	if err := checkSize(in.Size, limit); err != nil {
		return reject(err)
	}
	stage = StageSizeChecked

	if err := checkDangerous(name, in.DeclaredType); err != nil {
		return reject(err)
	}
	stage = StageDangerChecked

	if err := checkExtension(name, profile.AllowedExtensions); err != nil {
		return reject(err)
	}
	stage = StageExtensionChecked

	if err := ctx.Err(); err != nil {
		return reject(fmt.Errorf("%w: %w", ErrCancelled, err))
	}

	data, err := readContent(in.Content, limit)
	if err != nil {
		return reject(err)
	}
	stage = StageContentRead

	var sniffed string
	if profile.VerifyContent {
		sniffed, err = checkContent(data, in.DeclaredType, s.sniff)
	} else {
		err = checkUnverified(data, s.sniff)
	}
	if err != nil {
		return reject(err)
	}
	stage = StageContentVerified

	if err := checkArchive(data, in.DeclaredType); err != nil {
		return reject(err)
	}
	stage = StageArchiveChecked

	now := s.now()
	stored, err := uniqueName(name, now)
	if err != nil {
		return reject(err)
	}

	// Past this point the upload is committed; cancellation no longer applies.
	wctx := context.WithoutCancel(ctx)
	dir := category.Subpath()
	if err := s.storage.EnsureDir(wctx, dir); err != nil {
		return reject(fmt.Errorf("%w: %w", ErrStorageIO, err))
	}

	obj, err := s.storage.Write(wctx, path.Join(dir, stored), data, contentType(in.DeclaredType, sniffed, data))
	if err != nil {
		return reject(fmt.Errorf("%w: %w", ErrStorageIO, err))
	}
	stage = StageStored

	rec := &Record{
		ID:               id,
		Category:         category,
		Filename:         stored,
		OriginalFilename: in.Name,
		StoragePath:      obj.Path,
		RelativePath:     obj.Key,
		PublicPath:       file.PublicPath(obj.Key),
		Size:             obj.Size,
		DeclaredType:     in.DeclaredType,
		SniffedType:      sniffed,
		CreatedAt:        now,
	}

	s.logger.InfoContext(ctx, "file uploaded",
		logger.Component(component),
		logger.Category(category.String()),
		logger.Identifier(o.identifier),
		logger.Filename(in.Name),
		logger.Path(rec.RelativePath),
		logger.Size(rec.Size),
		logger.ContentType(sniffed),
	)

	return rec, nil
}

// Delete removes a stored file. Relative paths resolve against the storage
// root; absolute paths and s3:// URIs must point inside it. It reports whether
// a file existed and was removed. Failures are logged, never returned.
func (s *Service) Delete(ctx context.Context, p string) bool {
	if p == "" {
		return false
	}

	removed, err := s.storage.Delete(ctx, p)
	switch {
	case err == nil:
		if removed {
			s.logger.InfoContext(ctx, "file deleted", logger.Component(component), logger.Path(p))
		} else {
			s.logger.DebugContext(ctx, "file to delete not found", logger.Component(component), logger.Path(p))
		}
		return removed
	case errors.Is(err, file.ErrInvalidPath):
		s.logger.WarnContext(ctx, "refusing to delete outside storage root",
			logger.Component(component),
			logger.Path(p),
			logger.Error(err),
		)
	default:
		s.logger.ErrorContext(ctx, "failed to delete file",
			logger.Component(component),
			logger.Path(p),
			logger.Error(err),
		)
	}
	return false
}

// contentType picks the type stored alongside the object: the verified type,
// then the declared one, then a best guess from the content.
func contentType(declared, sniffed string, data []byte) string {
	if sniffed != "" {
		return sniffed
	}
	if mt := mediaType(declared); mt != "" {
		return mt
	}
	return file.DetectContentType(data)
}

