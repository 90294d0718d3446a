package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GO_ENV", "DATABASE_URL", "SQLITE_DATABASE", "LOG_LEVEL",
		"CORS_ALLOW_ORIGINS", "READ_TIMEOUT", "WRITE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, found := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.False(t, found)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range []string{"PORT", "GO_ENV", "SQLITE_DATABASE", "WRITE_TIMEOUT"} {
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nGO_ENV=production\nSQLITE_DATABASE=/tmp/areas.db\nWRITE_TIMEOUT=30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, found := Load(path)
	t.Cleanup(func() {
		for _, key := range []string{"PORT", "GO_ENV", "SQLITE_DATABASE", "WRITE_TIMEOUT"} {
			os.Unsetenv(key)
		}
	})

	assert.True(t, found)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/tmp/areas.db", cfg.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestValidate(t *testing.T) {
	base := Config{Port: "8080", LogLevel: "info", ReadTimeout: time.Second, WriteTimeout: time.Second}
	require.NoError(t, base.Validate())

	bad := base
	bad.Port = "eighty"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Port = "70000"
	assert.Error(t, bad.Validate())

	bad = base
	bad.ReadTimeout = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())
}

func TestGetDurationInvalid(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	assert.Equal(t, time.Duration(0), getDuration("READ_TIMEOUT", time.Second))
}

func TestNewLogger(t *testing.T) {
	cfg := Config{LogLevel: "debug"}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
