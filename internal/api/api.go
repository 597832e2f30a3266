// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
	"github.com/JaimeStill/promptvault/pkg/middleware"
	"github.com/JaimeStill/promptvault/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, runtime, domain, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Middleware(runtime.Auth, runtime.Cookie.Name))

	return m, nil
}
