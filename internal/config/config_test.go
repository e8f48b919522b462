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

func TestFromEnv_Defaults(t *testing.T) {
	for k := range defaults {
		t.Setenv(strings.ToUpper(k), "")
		os.Unsetenv(strings.ToUpper(k))
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "local_library", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.EnableHSTS)
	assert.False(t, cfg.TrustProxy)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("STORE_DRIVER", "Badger")
	t.Setenv("BADGER_DIR", "/tmp/library")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("TRUST_PROXY", "1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "badger", cfg.StoreDriver)
	assert.Equal(t, "/tmp/library", cfg.BadgerDir)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.EnableHSTS)
	assert.True(t, cfg.TrustProxy)
}

func TestFromEnv_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestValidate(t *testing.T) {
	cfg := Config{StoreDriver: "postgres", StoreTimeout: time.Second, RateLimitRPS: 1, RateLimitBurst: 1, MaxBodyBytes: 1}
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.StoreTimeout = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MaxBodyBytes = -1
	assert.Error(t, bad.Validate())
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("MONGO_DATABASE=from_file\nLOG_LEVEL=debug\n"), 0644))

	t.Setenv("MONGO_DATABASE", "from_env")
	os.Unsetenv("LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("MONGO_DATABASE"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}
