package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvAuthCookieName   = "PROMPTVAULT_AUTH_COOKIE_NAME"
	EnvAuthSessionTTL   = "PROMPTVAULT_AUTH_SESSION_TTL"
	EnvAuthKey          = "PROMPTVAULT_AUTH_KEY"
	EnvAuthKeyPath      = "PROMPTVAULT_AUTH_KEY_PATH"
	EnvAuthSecureCookie = "PROMPTVAULT_AUTH_SECURE_COOKIE"
)

// AuthConfig holds session cookie and token key settings.
// Key is a hex-encoded 32-byte symmetric key; when empty the key is
// loaded from (or generated into) KeyPath.
type AuthConfig struct {
	CookieName   string `toml:"cookie_name"`
	SessionTTL   string `toml:"session_ttl"`
	Key          string `toml:"key"`
	KeyPath      string `toml:"key_path"`
	SecureCookie bool   `toml:"secure_cookie"`
}

// SessionTTLDuration returns SessionTTL as a time.Duration.
func (c *AuthConfig) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.Key != "" {
		c.Key = overlay.Key
	}
	if overlay.KeyPath != "" {
		c.KeyPath = overlay.KeyPath
	}
	if overlay.SecureCookie {
		c.SecureCookie = true
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.CookieName == "" {
		c.CookieName = "prompt_manager_session"
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "720h"
	}
	if c.KeyPath == "" {
		c.KeyPath = ".promptvault/auth.key"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthCookieName); v != "" {
		c.CookieName = v
	}
	if v := os.Getenv(EnvAuthSessionTTL); v != "" {
		c.SessionTTL = v
	}
	if v := os.Getenv(EnvAuthKey); v != "" {
		c.Key = v
	}
	if v := os.Getenv(EnvAuthKeyPath); v != "" {
		c.KeyPath = v
	}
	if v := os.Getenv(EnvAuthSecureCookie); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SecureCookie = b
		}
	}
}

func (c *AuthConfig) validate() error {
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.Key != "" {
		key, err := hex.DecodeString(c.Key)
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("key must be 32 bytes, got %d", len(key))
		}
	}
	return nil
}
