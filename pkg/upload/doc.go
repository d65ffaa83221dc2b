// Package upload accepts untrusted files, validates them through a fixed
// sequence of independent gates and stores accepted files under a
// category-scoped layout.
//
// A Service is built from a file.Storage and a ratelimiter.Limiter, or from
// environment configuration with New:
//
//	var cfg upload.Config
//	config.MustLoad(&cfg)
//
//	svc, err := upload.New(ctx, cfg, upload.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	rec, err := svc.Upload(ctx, upload.Sketches,
//		upload.NewIncomingFile("photo.png", "image/png", data),
//		upload.WithIdentifier(userID),
//	)
//
// # Pipeline
//
// Upload checks, in order: presence of name and content, the caller's rate
// limit, cancellation, filename sanitization, declared size, the dangerous
// extension and type denylists, the category allow-list, cancellation again,
// a bounded content read with the actual size, content sniffing against the
// declared type and the small-archive heuristic. It then allocates a unique
// name, makes sure the category directory exists and writes the bytes.
// The first failing gate ends the upload with a *RejectedError whose Stage is
// the last stage passed. Nothing is written before every gate passed, and a
// started write is not interrupted by cancellation.
//
// The denylist and the allow-list are separate gates: a name must pass both.
//
// # Categories
//
// Categories form a closed set. Each one maps to a storage subpath and a
// Profile; categories without an explicit profile use DefaultProfile, which
// has no allow-list and skips content verification. Profiles can be tuned per
// deployment with LoadProfilesFile and WithProfileOverrides, and per call with
// WithAllowedExtensions, WithMaxSize and WithContentVerification.
//
// # Limitations
//
// The archive check only compares the compressed size with MinArchiveSize; it
// does not inspect compression ratios. Rate limits are tracked per process.
// A crash between creating the directory and finishing the write may leave a
// partial file unless the local backend runs with atomic writes.
package upload
