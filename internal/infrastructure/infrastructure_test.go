package infrastructure_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := infrastructure.NewLogger(&config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("visible", "system", "test")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
	assert.Contains(t, buf.String(), `"system":"test"`)
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := infrastructure.NewLogger(&config.LoggingConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_OptionalSystemsDisabled(t *testing.T) {
	t.Setenv("PROMPTVAULT_DB_NAME", "vault")
	t.Setenv("PROMPTVAULT_DB_USER", "vault")

	cfg, err := config.LoadFrom(t.TempDir() + "/absent.toml")
	require.NoError(t, err)

	infra, err := infrastructure.New(cfg)
	require.NoError(t, err)

	assert.NotNil(t, infra.Database)
	assert.Nil(t, infra.Cache)
	assert.Nil(t, infra.Storage)
	assert.False(t, infra.Lifecycle.Ready())
}
