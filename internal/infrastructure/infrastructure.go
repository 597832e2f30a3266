// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, cache, storage) that domain systems require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/pkg/cache"
	"github.com/JaimeStill/promptvault/pkg/database"
	"github.com/JaimeStill/promptvault/pkg/lifecycle"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Cache and Storage are nil when their configuration disables them.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Cache     cache.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger(&cfg.Logging, os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}

	if cfg.Cache.Enabled() {
		c, err := cache.New(&cfg.Cache, logger)
		if err != nil {
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		infra.Cache = c
	}

	if cfg.Storage.Enabled {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	return infra, nil
}

// NewLogger builds the service logger: JSON for "json", tint console output otherwise.
func NewLogger(cfg *config.LoggingConfig, w io.Writer) *slog.Logger {
	level := cfg.SlogLevel()

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	}

	return slog.New(handler)
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Cache != nil {
		if err := i.Cache.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("cache start failed: %w", err)
		}
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}
