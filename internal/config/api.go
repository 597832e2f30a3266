package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/promptvault/pkg/formatting"
	"github.com/JaimeStill/promptvault/pkg/middleware"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTVAULT_CORS_ENABLED",
	Origins:          "PROMPTVAULT_CORS_ORIGINS",
	AllowedMethods:   "PROMPTVAULT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTVAULT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTVAULT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTVAULT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultLimit: "PROMPTVAULT_PAGINATION_DEFAULT_LIMIT",
	MaxLimit:     "PROMPTVAULT_PAGINATION_MAX_LIMIT",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "PROMPTVAULT_OPENAPI_TITLE",
	Description: "PROMPTVAULT_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, redirect targets, CORS, and pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxFormSize string                `toml:"max_form_size"`
	HomePath    string                `toml:"home_path"`
	LoginPath   string                `toml:"login_path"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxFormSizeBytes returns MaxFormSize as a byte count.
func (c *APIConfig) MaxFormSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxFormSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxFormSize != "" {
		c.MaxFormSize = overlay.MaxFormSize
	}
	if overlay.HomePath != "" {
		c.HomePath = overlay.HomePath
	}
	if overlay.LoginPath != "" {
		c.LoginPath = overlay.LoginPath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxFormSize == "" {
		c.MaxFormSize = "10MB"
	}
	if c.HomePath == "" {
		c.HomePath = "/"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PROMPTVAULT_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PROMPTVAULT_API_MAX_FORM_SIZE"); v != "" {
		c.MaxFormSize = v
	}
	if v := os.Getenv("PROMPTVAULT_API_HOME_PATH"); v != "" {
		c.HomePath = v
	}
	if v := os.Getenv("PROMPTVAULT_API_LOGIN_PATH"); v != "" {
		c.LoginPath = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxFormSize); err != nil {
		return fmt.Errorf("invalid max_form_size: %w", err)
	}
	if !strings.HasPrefix(c.HomePath, "/") {
		return fmt.Errorf("home_path must start with /: %s", c.HomePath)
	}
	if !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("login_path must start with /: %s", c.LoginPath)
	}
	return nil
}
