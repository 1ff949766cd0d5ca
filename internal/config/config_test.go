package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mypoc", cfg.DatabaseSchema)
	assert.Equal(t, 3*time.Second, cfg.DatabaseTimeout)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.EnableHSTS)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_SCHEMA", "library")
	t.Setenv("DB_TIMEOUT", "750ms")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "library", cfg.DatabaseSchema)
	assert.Equal(t, 750*time.Millisecond, cfg.DatabaseTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
	assert.Equal(t, "/custom/migrations", cfg.MigrationsDir)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoad_InvalidTrustedProxy(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "proxy.internal")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DB_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nDB_SCHEMA=from_file\n"), 0644))

	t.Setenv("DB_DSN", "from_env")
	t.Setenv("DB_SCHEMA", "")
	os.Unsetenv("DB_SCHEMA")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "from_file", os.Getenv("DB_SCHEMA"))
}
