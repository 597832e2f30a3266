package api

import (
	"fmt"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
	"github.com/JaimeStill/promptvault/pkg/pagination"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

// Runtime extends Infrastructure with API-specific configuration
// and the session provider shared by every handler.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	Auth        auth.Provider
	Cookie      auth.CookieConfig
	Validator   *validation.Validator
	MaxFormSize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
// Session revocations live in the cache when one is configured and
// in process memory otherwise.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	key, err := auth.ResolveKey(cfg.Auth.Key, cfg.Auth.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("session key: %w", err)
	}

	var revocations auth.Revocations
	if infra.Cache != nil {
		revocations = auth.NewRedisRevocations(infra.Cache)
	} else {
		logger.Warn("cache disabled, session revocations held in memory")
		revocations = auth.NewMemoryRevocations()
	}

	provider, err := auth.NewProvider(key, cfg.Auth.SessionTTLDuration(), revocations, logger)
	if err != nil {
		return nil, fmt.Errorf("session provider: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Cache:     infra.Cache,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Auth:       provider,
		Cookie: auth.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.SecureCookie,
		},
		Validator:   validation.New(),
		MaxFormSize: cfg.API.MaxFormSizeBytes(),
	}, nil
}
