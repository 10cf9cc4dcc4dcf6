package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "memory", cfg.History.Backend)
	assert.Equal(t, 500, cfg.History.RetentionLimit)
	assert.Equal(t, 2*time.Second, cfg.Generation.LookupTimeout())
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: 127.0.0.1
storage:
  type: postgres
  database_url: postgres://localhost/jarvis
history:
  backend: redis
  redis_addr: localhost:6379
  retention_limit: 100
generation:
  lookup_timeout_seconds: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, "redis", cfg.History.Backend)
	assert.Equal(t, 100, cfg.History.RetentionLimit)
	assert.Equal(t, 5*time.Second, cfg.Generation.LookupTimeout())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7001")
	t.Setenv("DATABASE_URL", "postgres://db/jarvis")
	t.Setenv("REDIS_ADDR", "localhost:6390")

	cfg, err := LoadFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, "postgres://db/jarvis", cfg.Storage.DatabaseURL)
	assert.Equal(t, "redis", cfg.History.Backend)
	assert.Equal(t, "localhost:6390", cfg.History.RedisAddr)
}
