// Package logger builds *slog.Logger values for the upload service and
// provides attribute helpers so every component logs with the same keys.
//
// New starts from JSON at info level on stdout. WithEnvironment switches to
// the defaults of a deployment stage, and ParseEnvironment and ParseLevel
// turn configuration strings into option values:
//
//	env, err := logger.ParseEnvironment(os.Getenv("UPLOAD_ENV"))
//	if err != nil {
//	    return err
//	}
//	log := logger.New(logger.WithEnvironment(env, "uploads"))
//
// Every logger built by New adds the upload ID stored with WithUploadID to
// records logged through a context, so all lines of one upload attempt can
// be correlated:
//
//	ctx = logger.WithUploadID(ctx, id.String())
//	log.WarnContext(ctx, "upload rejected",
//	    logger.Category("sketches"),
//	    logger.Stage(upload.StageSanitized.String()),
//	    logger.Error(err),
//	)
//
// Error, Errors and ContentType return an empty attribute for zero input,
// which slog omits, so callers do not need nil checks. Filename quotes its
// value because upload names are untrusted.
//
// Discard returns a logger that drops everything. Services default to it
// until a logger is injected with their WithLogger option.
package logger
