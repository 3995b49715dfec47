package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Cache.Driver)
	assert.Equal(t, "geo_cache.csv", cfg.Cache.Path)
	assert.False(t, cfg.Cache.AlwaysResolve)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Provider.BaseURL)
	assert.Equal(t, "gedplace-geocoder", cfg.Provider.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, time.Second, cfg.Provider.Interval)
	assert.Equal(t, 3, cfg.Provider.MaxRetries)
	assert.Equal(t, 3, cfg.Provider.MaxDepth)
	assert.Equal(t, time.Second, cfg.Provider.RetryBackoff)
	assert.Equal(t, 90, cfg.Fuzzy.Threshold)
	assert.Equal(t, 8, cfg.Canonical.MaxVariants)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Geo.DefaultCountry)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtemp(t)

	yaml := `
cache:
  driver: sqlite
  path: places.db
geo:
  default_country: France
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gedplace.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "places.db", cfg.Cache.Path)
	assert.Equal(t, "France", cfg.Geo.DefaultCountry)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 90, cfg.Fuzzy.Threshold)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtemp(t)

	yaml := `
cache:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gedplace.yaml"), []byte(yaml), 0644))

	t.Setenv("GEDPLACE_CACHE_DRIVER", "csv")
	t.Setenv("GEDPLACE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "csv", cfg.Cache.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtemp(t)

	t.Setenv("GEDPLACE_FUZZY_THRESHOLD", "85")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 85, cfg.Fuzzy.Threshold)
}

func TestValidateDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestValidateBadDriver(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Cache.Driver = "postgres"

	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.driver")
}

func TestValidateAccumulates(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Cache.Path = ""
	cfg.Fuzzy.Threshold = 101
	cfg.Provider.MaxRetries = 0

	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.path is required")
	assert.Contains(t, err.Error(), "fuzzy.threshold")
	assert.Contains(t, err.Error(), "provider.max_retries")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
