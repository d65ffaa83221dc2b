package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/safeupload/pkg/file"
	"github.com/dmitrymomot/safeupload/pkg/logger"
	"github.com/dmitrymomot/safeupload/pkg/ratelimiter"
)

// Storage drivers accepted by Config.StorageDriver.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config is the environment configuration of a Service built by New.
// Load it with config.Load.
type Config struct {
	StorageDriver string        `env:"UPLOAD_STORAGE_DRIVER" envDefault:"local"`
	Root          string        `env:"UPLOAD_ROOT" envDefault:"./uploads"`
	AtomicWrites  bool          `env:"UPLOAD_ATOMIC_WRITES" envDefault:"false"`
	RateLimit     int           `env:"UPLOAD_RATE_LIMIT" envDefault:"10"`
	RateWindow    time.Duration `env:"UPLOAD_RATE_WINDOW" envDefault:"60s"`
	ProfilesFile  string        `env:"UPLOAD_PROFILES_FILE"`

	Env         string `env:"UPLOAD_ENV" envDefault:"development"`
	LogLevel    string `env:"UPLOAD_LOG_LEVEL"`
	ServiceName string `env:"UPLOAD_SERVICE_NAME" envDefault:"safeupload"`

	S3Bucket         string        `env:"UPLOAD_S3_BUCKET"`
	S3Region         string        `env:"UPLOAD_S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string        `env:"UPLOAD_S3_ACCESS_KEY_ID"`
	S3SecretKey      string        `env:"UPLOAD_S3_SECRET_KEY"`
	S3Endpoint       string        `env:"UPLOAD_S3_ENDPOINT"`
	S3Prefix         string        `env:"UPLOAD_S3_PREFIX"`
	S3ForcePathStyle bool          `env:"UPLOAD_S3_FORCE_PATH_STYLE" envDefault:"false"`
	S3UploadTimeout  time.Duration `env:"UPLOAD_S3_UPLOAD_TIMEOUT" envDefault:"5m"`
}

// New builds a Service from cfg: the logger, the storage backend, an
// in-memory rate limiter and optional profile overrides. A WithLogger option
// replaces the configured logger. Close the service to stop the limiter's
// cleanup goroutine.
func New(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	log, err := cfg.Logger(nil)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithLogger(log)}, opts...)

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rateCfg := ratelimiter.Config{Limit: cfg.RateLimit, Window: cfg.RateWindow}
	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.NewLimiter(store, rateCfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.ProfilesFile != "" {
		profiles, err := LoadProfilesFile(cfg.ProfilesFile)
		if err != nil {
			store.Close()
			return nil, err
		}
		opts = append([]Option{WithProfileOverrides(profiles)}, opts...)
	}

	svc, err := NewService(storage, limiter, opts...)
	if err != nil {
		store.Close()
		return nil, err
	}
	svc.closers = append(svc.closers, store.Close)

	return svc, nil
}

// Logger builds the logger described by Env, LogLevel and ServiceName,
// writing to w or to stdout when w is nil.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	env, err := logger.ParseEnvironment(c.Env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	level, ok, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := []logger.Option{logger.WithEnvironment(env, c.ServiceName), logger.WithOutput(w)}
	if ok {
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

func newStorage(ctx context.Context, cfg Config) (file.Storage, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", DriverLocal:
		var opts []file.LocalOption
		if cfg.AtomicWrites {
			opts = append(opts, file.WithAtomicWrites())
		}
		storage, err := file.NewLocalStorage(cfg.Root, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return storage, nil

	case DriverS3:
		storage, err := file.NewS3Storage(ctx, file.S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			Prefix:         cfg.S3Prefix,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, file.WithS3UploadTimeout(cfg.S3UploadTimeout))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return storage, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, cfg.StorageDriver)
	}
}
