package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albuhara/internal/admin/config"
	"albuhara/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:8000/api/auth/token/", cfg.API.TokenURL())
	assert.Equal(t, "http://localhost:8000/api/auth/token/refresh/", cfg.API.RefreshURL())
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, config.BackendFile, cfg.Credentials.Backend)
	assert.False(t, cfg.Breaker.Enabled)
	assert.Nil(t, cfg.API.Limiter())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ADMIN_API_BASE_URL", "https://api.albuhara.az/")
	t.Setenv("ADMIN_CREDENTIALS_BACKEND", "redis")
	t.Setenv("ADMIN_PROFILE", "staging")
	t.Setenv("ADMIN_BREAKER_ENABLED", "true")
	t.Setenv("ADMIN_LOGGER_MODE", "production")
	t.Setenv("ADMIN_API_RATE_LIMIT", "2.5")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://api.albuhara.az/api/auth/token/refresh/", cfg.API.RefreshURL())
	assert.Equal(t, "albuhara:admin:credentials:staging", cfg.Credentials.ResolveRedisKey())
	assert.True(t, cfg.Breaker.Enabled)
	assert.Equal(t, 5, cfg.Breaker.CircuitBreakerConfig().ErrorThreshold)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	require.NotNil(t, cfg.API.Limiter())
	assert.InDelta(t, 2.5, float64(cfg.API.Limiter().Limit()), 0.001)
	assert.Equal(t, 1, cfg.API.Limiter().Burst())
	assert.Equal(t, "localhost:6379", cfg.Redis.ClientConfig().Address())
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("ADMIN_CREDENTIALS_BACKEND", "keychain")

	cfg, err := config.Load(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.yaml")
	content := "api:\n  base_url: http://backend:9000\ncredentials:\n  backend: memory\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000/api/auth/token/", cfg.API.TokenURL())
	assert.Equal(t, config.BackendMemory, cfg.Credentials.Backend)
}

func TestResolveFilePath(t *testing.T) {
	explicit := config.CredentialsConfig{FilePath: "/tmp/creds.json"}
	path, err := explicit.ResolveFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/creds.json", path)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	derived := config.CredentialsConfig{Profile: "default"}
	path, err = derived.ResolveFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("albuhara", "default.json"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
