// Package config loads service configuration from TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptvault/pkg/cache"
	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvServiceEnv             = "PROMPTVAULT_ENV"
	EnvServiceShutdownTimeout = "PROMPTVAULT_SHUTDOWN_TIMEOUT"
	EnvServiceVersion         = "PROMPTVAULT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PROMPTVAULT_DB_HOST",
	Port:            "PROMPTVAULT_DB_PORT",
	Name:            "PROMPTVAULT_DB_NAME",
	User:            "PROMPTVAULT_DB_USER",
	Password:        "PROMPTVAULT_DB_PASSWORD",
	SSLMode:         "PROMPTVAULT_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTVAULT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTVAULT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTVAULT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTVAULT_DB_CONN_TIMEOUT",
}

var cacheEnv = &cache.Env{
	Addr:        "PROMPTVAULT_CACHE_ADDR",
	Password:    "PROMPTVAULT_CACHE_PASSWORD",
	DB:          "PROMPTVAULT_CACHE_DB",
	KeyPrefix:   "PROMPTVAULT_CACHE_KEY_PREFIX",
	DialTimeout: "PROMPTVAULT_CACHE_DIAL_TIMEOUT",
}

var storageEnv = &storage.Env{
	Enabled:          "PROMPTVAULT_STORAGE_ENABLED",
	ContainerName:    "PROMPTVAULT_STORAGE_CONTAINER_NAME",
	ConnectionString: "PROMPTVAULT_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the promptvault service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Logging         LoggingConfig   `toml:"logging"`
	Auth            AuthConfig      `toml:"auth"`
	Cache           cache.Config    `toml:"cache"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PROMPTVAULT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom is Load with an explicit base file path. The overlay is resolved
// next to the base file.
func LoadFrom(basePath string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(basePath); err == nil {
		loaded, err := load(basePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(basePath); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.Auth.Merge(&overlay.Auth)
	c.Cache.Merge(&overlay.Cache)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(basePath string) string {
	env := os.Getenv(EnvServiceEnv)
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(basePath), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
