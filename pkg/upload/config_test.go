package upload_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeupload/pkg/config"
	"github.com/dmitrymomot/safeupload/pkg/upload"
)

func localConfig(t *testing.T) upload.Config {
	t.Helper()
	return upload.Config{
		StorageDriver: upload.DriverLocal,
		Root:          t.TempDir(),
		RateLimit:     10,
		RateWindow:    time.Minute,
		Env:           "production",
		LogLevel:      "error",
	}
}

func TestNew_Local(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := localConfig(t)
	cfg.AtomicWrites = true

	svc, err := upload.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	rec, err := svc.Upload(ctx, upload.Documents, upload.NewIncomingFile("notes.txt", "text/plain", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Root, "documents", rec.Filename), rec.StoragePath)

	data, err := os.ReadFile(rec.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestNew_ProfilesFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := localConfig(t)
	cfg.ProfilesFile = filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(cfg.ProfilesFile, []byte("documents:\n  allowed_extensions: [.pdf]\n"), 0o600))

	svc, err := upload.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	assert.Equal(t, []string{".pdf"}, svc.Profile(upload.Documents).AllowedExtensions)
	_, err = svc.Upload(ctx, upload.Documents, upload.NewIncomingFile("notes.txt", "text/plain", []byte("hello")))
	assert.ErrorIs(t, err, upload.ErrExtensionNotAllowed)
}

func TestNew_RateLimitFromConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := localConfig(t)
	cfg.RateLimit = 1

	svc, err := upload.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	_, err = svc.Upload(ctx, upload.Temporary, upload.NewIncomingFile("a.txt", "text/plain", []byte("a")))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, upload.Temporary, upload.NewIncomingFile("a.txt", "text/plain", []byte("a")))
	assert.ErrorIs(t, err, upload.ErrRateLimitExceeded)
}

func TestNew_S3(t *testing.T) {
	t.Parallel()

	svc, err := upload.New(context.Background(), upload.Config{
		StorageDriver:    upload.DriverS3,
		RateLimit:        10,
		RateWindow:       time.Minute,
		S3Bucket:         "uploads",
		S3Region:         "eu-central-1",
		S3AccessKeyID:    "key",
		S3SecretKey:      "secret",
		S3Endpoint:       "http://localhost:9000",
		S3Prefix:         "media",
		S3ForcePathStyle: true,
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	assert.Equal(t, "s3://uploads/media", svc.Root())
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]func(*upload.Config){
		"unknown driver":    func(c *upload.Config) { c.StorageDriver = "ftp" },
		"zero rate limit":   func(c *upload.Config) { c.RateLimit = 0 },
		"zero window":       func(c *upload.Config) { c.RateWindow = 0 },
		"empty local root":  func(c *upload.Config) { c.Root = "" },
		"s3 without bucket": func(c *upload.Config) { c.StorageDriver = upload.DriverS3 },
		"unknown env":       func(c *upload.Config) { c.Env = "qa" },
		"unknown log level": func(c *upload.Config) { c.LogLevel = "verbose" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := localConfig(t)
			mutate(&cfg)
			_, err := upload.New(context.Background(), cfg)
			assert.ErrorIs(t, err, upload.ErrInvalidConfig)
		})
	}

	cfg := localConfig(t)
	cfg.ProfilesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := upload.New(context.Background(), cfg)
	assert.ErrorIs(t, err, upload.ErrInvalidProfiles)
}

func TestConfig_FromEnvironment(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("UPLOAD_STORAGE_DRIVER", "s3")
	t.Setenv("UPLOAD_RATE_LIMIT", "25")
	t.Setenv("UPLOAD_RATE_WINDOW", "30s")
	t.Setenv("UPLOAD_S3_BUCKET", "media")
	t.Setenv("UPLOAD_S3_FORCE_PATH_STYLE", "true")

	var cfg upload.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, upload.DriverS3, cfg.StorageDriver)
	assert.Equal(t, 25, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.True(t, cfg.S3ForcePathStyle)
	assert.Equal(t, "./uploads", cfg.Root)
	assert.Equal(t, 5*time.Minute, cfg.S3UploadTimeout)
	assert.False(t, cfg.AtomicWrites)
	assert.Equal(t, "development", cfg.Env)
	assert.Empty(t, cfg.LogLevel)
	assert.Equal(t, "safeupload", cfg.ServiceName)
}

func TestConfig_Logger(t *testing.T) {
	t.Parallel()

	t.Run("environment defaults", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log, err := upload.Config{Env: "prod", ServiceName: "media"}.Logger(buf)
		require.NoError(t, err)

		log.Debug("hidden")
		log.Info("ready")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ready", entry["msg"])
		assert.Equal(t, "media", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("level overrides environment", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log, err := upload.Config{LogLevel: "warn"}.Logger(buf)
		require.NoError(t, err)

		log.Info("hidden")
		log.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestNew_LogsWithUploadID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	buf := &syncBuffer{}
	log, err := upload.Config{Env: "production"}.Logger(buf)
	require.NoError(t, err)

	svc, err := upload.New(ctx, localConfig(t), upload.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	rec, err := svc.Upload(ctx, upload.Temporary, upload.NewIncomingFile("notes.txt", "text/plain", []byte("hello")))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "file uploaded", entry["msg"])
	assert.Equal(t, rec.ID.String(), entry["upload_id"])
}
