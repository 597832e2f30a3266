package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Redis connection parameters. An empty Addr disables the cache.
type Config struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	KeyPrefix   string `toml:"key_prefix"`
	DialTimeout string `toml:"dial_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Addr        string
	Password    string
	DB          string
	KeyPrefix   string
	DialTimeout string
}

// Enabled reports whether a Redis address is configured.
func (c *Config) Enabled() bool {
	return c.Addr != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
	if overlay.DialTimeout != "" {
		c.DialTimeout = overlay.DialTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "promptvault:"
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Addr != "" {
		if v := os.Getenv(env.Addr); v != "" {
			c.Addr = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.DB != "" {
		if v := os.Getenv(env.DB); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DB = n
			}
		}
	}
	if env.KeyPrefix != "" {
		if v := os.Getenv(env.KeyPrefix); v != "" {
			c.KeyPrefix = v
		}
	}
	if env.DialTimeout != "" {
		if v := os.Getenv(env.DialTimeout); v != "" {
			c.DialTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.DB < 0 {
		return fmt.Errorf("db must not be negative")
	}
	if _, err := time.ParseDuration(c.DialTimeout); err != nil {
		return fmt.Errorf("invalid dial_timeout: %w", err)
	}
	return nil
}
