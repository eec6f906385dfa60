package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs Load from an empty directory so no stray config.yaml or .env
// leaks in, and clears the variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ANTHROPIC_API_KEY", "")
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, envPrefix+"_") {
			t.Setenv(k, "")
		}
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8095", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "data/readiness.db", cfg.Store.DSN)
	assert.Equal(t, 3, cfg.Persistence.Attempts)
	assert.Equal(t, time.Second, cfg.Persistence.Delay)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, int64(4096), cfg.LLM.MaxTokens)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("READINESS_SERVER_ADDR", ":9000")
	t.Setenv("READINESS_PERSISTENCE_ATTEMPTS", "5")
	t.Setenv("READINESS_CACHE_TTL", "15m")
	t.Setenv("READINESS_STORE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Persistence.Attempts)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "postgres", cfg.Store.Driver)
}

func TestLoadAnthropicKeyFallback(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", " sk-fallback ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.LLM.APIKey)

	t.Setenv("READINESS_LLM_API_KEY", "sk-primary")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-primary", cfg.LLM.APIKey)
}

func TestLoadFileAndEnvFile(t *testing.T) {
	dir := isolate(t)
	yml := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("server:\n  addr: \":7000\"\nlog:\n  level: debug\npersistence:\n  delay: 250ms\n"), 0o600))
	env := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(env, []byte("READINESS_REDIS_ADDRESS=localhost:6390\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("READINESS_REDIS_ADDRESS") })

	cfg, err := Load(WithFile(yml), WithEnvFile(env))
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Persistence.Delay)
	assert.Equal(t, "localhost:6390", cfg.Redis.Address)
}

func TestLoadSearchesConfigsDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte("store:\n  dsn: /tmp/other.db\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Store.DSN)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(WithFile("does-not-exist.yaml"))
	assert.ErrorContains(t, err, "read config does-not-exist.yaml")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	isolate(t)
	t.Setenv("READINESS_PERSISTENCE_ATTEMPTS", "0")
	t.Setenv("READINESS_STORE_DRIVER", "mysql")
	t.Setenv("READINESS_CACHE_TTL", "0s")

	_, err := Load()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "persistence.attempts must be positive")
	assert.Contains(t, msg, `store.driver "mysql" is not sqlite or postgres`)
	assert.Contains(t, msg, "cache.ttl must be positive")
}
