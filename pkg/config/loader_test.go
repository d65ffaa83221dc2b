package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeupload/pkg/config"
)

// Tests in this file mutate the process environment and the shared cache,
// so none of them run in parallel.

type defaultsConfig struct {
	Driver string        `env:"CFG_TEST_DRIVER" envDefault:"local"`
	Limit  int           `env:"CFG_TEST_LIMIT" envDefault:"10"`
	Window time.Duration `env:"CFG_TEST_WINDOW" envDefault:"60s"`
	Atomic bool          `env:"CFG_TEST_ATOMIC" envDefault:"false"`
}

type overrideConfig struct {
	Root  string   `env:"CFG_TEST_ROOT" envDefault:"./uploads"`
	Exts  []string `env:"CFG_TEST_EXTS" envSeparator:","`
	Limit int      `env:"CFG_TEST_OVERRIDE_LIMIT" envDefault:"10"`
}

type requiredConfig struct {
	Bucket string `env:"CFG_TEST_BUCKET,required"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"first"`
}

type envFileConfig struct {
	Value string `env:"CFG_TEST_FROM_FILE"`
	Kept  string `env:"CFG_TEST_PRESET"`
}

func TestLoad_Defaults(t *testing.T) {
	config.Reset()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "local", cfg.Driver)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.False(t, cfg.Atomic)
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.Reset()
	t.Setenv("CFG_TEST_ROOT", "/srv/uploads")
	t.Setenv("CFG_TEST_EXTS", ".png,.jpg")
	t.Setenv("CFG_TEST_OVERRIDE_LIMIT", "3")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/srv/uploads", cfg.Root)
	assert.Equal(t, []string{".png", ".jpg"}, cfg.Exts)
	assert.Equal(t, 3, cfg.Limit)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.Reset()
	os.Unsetenv("CFG_TEST_BUCKET")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachedUntilReset(t *testing.T) {
	config.Reset()
	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CFG_TEST_CACHED", "second")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value)

	config.Reset()

	var reloaded cachedConfig
	require.NoError(t, config.Load(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	config.Reset()
	os.Unsetenv("CFG_TEST_BUCKET")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})

	t.Setenv("CFG_TEST_BUCKET", "uploads")
	assert.NotPanics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
		assert.Equal(t, "uploads", cfg.Bucket)
	})
}

func TestLoadEnv(t *testing.T) {
	config.Reset()

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_FROM_FILE=from-file\nCFG_TEST_PRESET=from-file\n"), 0o600))
	t.Setenv("CFG_TEST_FROM_FILE", "")
	os.Unsetenv("CFG_TEST_FROM_FILE")
	t.Setenv("CFG_TEST_PRESET", "from-env")

	require.NoError(t, config.LoadEnv(path))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)
	assert.Equal(t, "from-env", cfg.Kept, "existing variables must not be overridden")

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}
