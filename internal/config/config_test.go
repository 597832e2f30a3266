package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/config"
)

const baseConfig = `
shutdown_timeout = "20s"

[server]
port = 8080

[database]
name = "promptvault"
user = "promptvault"

[logging]
level = "debug"
format = "json"

[auth]
session_ttl = "24h"

[cache]
addr = "localhost:6379"

[api]
home_path = "/app"

[api.pagination]
default_limit = 25
max_limit = 100
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[auth]
secure_cookie = true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Base(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", baseConfig)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTLDuration())
	assert.Equal(t, "prompt_manager_session", cfg.Auth.CookieName)
	assert.True(t, cfg.Cache.Enabled())
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "/app", cfg.API.HomePath)
	assert.Equal(t, "/login", cfg.API.LoginPath)
	assert.Equal(t, 25, cfg.API.Pagination.DefaultLimit)
}

func TestLoadFrom_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", baseConfig)
	writeFile(t, dir, "config.prod.toml", overlayConfig)
	t.Setenv(config.EnvServiceEnv, "prod")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "prodhost", cfg.Database.Host)
	assert.Equal(t, "promptvault", cfg.Database.Name)
	assert.True(t, cfg.Auth.SecureCookie)
	assert.Equal(t, "prod", cfg.Env())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", baseConfig)
	t.Setenv("PROMPTVAULT_SERVER_PORT", "7070")
	t.Setenv("PROMPTVAULT_LOG_LEVEL", "WARN")
	t.Setenv("PROMPTVAULT_API_LOGIN_PATH", "/signin")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/signin", cfg.API.LoginPath)
}

func TestLoadFrom_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("PROMPTVAULT_DB_NAME", "vault")
	t.Setenv("PROMPTVAULT_DB_USER", "vault")

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "vault", cfg.Database.Name)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionTTLDuration())
	assert.Equal(t, 50, cfg.API.Pagination.DefaultLimit)
}

func TestLoadFrom_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad log format", "[database]\nname = \"a\"\nuser = \"b\"\n\n[logging]\nformat = \"xml\"\n"},
		{"bad session ttl", "[database]\nname = \"a\"\nuser = \"b\"\n\n[auth]\nsession_ttl = \"forever\"\n"},
		{"missing database", "[server]\nport = 8080\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			_, err := config.LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestAuthConfig_KeyValidation(t *testing.T) {
	cfg := config.AuthConfig{Key: "abcd"}
	err := cfg.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestLoggingConfig_Invalid(t *testing.T) {
	cfg := config.LoggingConfig{Format: "xml"}
	assert.Error(t, cfg.Finalize())
}
