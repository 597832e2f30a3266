package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/exports"
	"github.com/JaimeStill/promptvault/internal/notes"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/internal/tags"
	"github.com/JaimeStill/promptvault/pkg/openapi"
	"github.com/JaimeStill/promptvault/pkg/routes"
)

func buildGroups(runtime *Runtime, domain *Domain, cfg *config.Config) []routes.Group {
	groups := []routes.Group{
		auth.NewHandler(
			domain.Users,
			runtime.Auth,
			runtime.Cookie,
			runtime.Validator,
			runtime.Logger,
		).Routes(),
		prompts.NewHandler(
			domain.Prompts,
			domain.Tags,
			runtime.Validator,
			runtime.Logger,
			runtime.Pagination,
		).Routes(),
		prompts.NewShareHandler(
			domain.Prompts,
			prompts.ShareConfig{
				HomePath:    cfg.API.HomePath,
				LoginPath:   cfg.API.LoginPath,
				MaxFormSize: runtime.MaxFormSize,
			},
			runtime.Logger,
		).Routes(),
		tags.NewHandler(
			domain.Tags,
			runtime.Validator,
			runtime.Logger,
			runtime.Pagination,
		).Routes(),
		notes.NewHandler(
			domain.Notes,
			domain.Prompts,
			runtime.Validator,
			runtime.Logger,
		).Routes(),
	}

	if domain.Exports != nil {
		groups = append(groups, exports.NewHandler(domain.Exports, runtime.Logger).Routes())
	}

	return groups
}

// buildSpec describes every documented route in groups as an OpenAPI document
// rooted at the API base path.
func buildSpec(cfg *config.Config, groups []routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.Components.SecuritySchemes = map[string]*openapi.SecurityScheme{
		"session": {
			Type: "apiKey",
			In:   "cookie",
			Name: cfg.Auth.CookieName,
		},
	}

	routes.Describe(spec, cfg.API.BasePath, groups...)
	return spec
}

func registerRoutes(
	mux *http.ServeMux,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) error {
	groups := buildGroups(runtime, domain, cfg)
	routes.Register(mux, groups...)

	specBytes, err := openapi.MarshalJSON(buildSpec(cfg, groups))
	if err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
