package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Zero(t, cfg.API.Retry.MaxAttempts)
	assert.Zero(t, cfg.API.RateLimit.RequestsPerSecond)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, "default", cfg.Session.Profile)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 3, cfg.OTP.MaxAttempts)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  base_url: https://advisory.example.org/api/v1
  timeout: 15s
  retry:
    max_attempts: 3
session:
  store: sqlite
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SESSION_ENCRYPTION_KEY", "c2VjcmV0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://advisory.example.org/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.API.Retry.InitialBackoff)
	assert.Equal(t, "sqlite", cfg.Session.Store)
	assert.Equal(t, "c2VjcmV0", cfg.Session.EncryptionKey)
}

func TestLoad_APIURLEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file/api\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("API_URL", "http://env/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env/api", cfg.API.BaseURL)
}

func TestLoadWithFlags(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("profile", "", "")
	fs.String("session-store", "", "")
	require.NoError(t, fs.Parse([]string{"--api-url", "http://flag/api", "--profile", "field-2"}))

	cfg, err := LoadWithFlags(fs)
	require.NoError(t, err)

	assert.Equal(t, "http://flag/api", cfg.API.BaseURL)
	assert.Equal(t, "field-2", cfg.Session.Profile)
	// unset flag keeps the default
	assert.Equal(t, "file", cfg.Session.Store)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestSQLiteConfig_DSN(t *testing.T) {
	c := SQLiteConfig{Path: "/tmp/s.db"}
	assert.Equal(t, "file:/tmp/s.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", c.DSN())
}
