package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/api"
	"github.com/JaimeStill/promptvault/internal/config"
	"github.com/JaimeStill/promptvault/internal/infrastructure"
	"github.com/JaimeStill/promptvault/pkg/module"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func setup(t *testing.T) (*config.Config, *infrastructure.Infrastructure) {
	t.Helper()
	t.Setenv("PROMPTVAULT_DB_NAME", "vault")
	t.Setenv("PROMPTVAULT_DB_USER", "vault")
	t.Setenv("PROMPTVAULT_AUTH_KEY", testKey)

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	infra, err := infrastructure.New(cfg)
	require.NoError(t, err)

	return cfg, infra
}

func newModule(t *testing.T) *module.Module {
	t.Helper()
	cfg, infra := setup(t)

	m, err := api.NewModule(cfg, infra)
	require.NoError(t, err)
	return m
}

func serve(m *module.Module, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewModule(t *testing.T) {
	m := newModule(t)
	assert.Equal(t, "/api", m.Prefix())
}

func TestNewRuntime(t *testing.T) {
	cfg, infra := setup(t)

	runtime, err := api.NewRuntime(cfg, infra)
	require.NoError(t, err)

	assert.Equal(t, cfg.API.Pagination, runtime.Pagination)
	assert.Equal(t, "prompt_manager_session", runtime.Cookie.Name)
	assert.NotNil(t, runtime.Auth)
	assert.NotNil(t, runtime.Validator)
	assert.NotNil(t, runtime.Logger)
	assert.Positive(t, runtime.MaxFormSize)
}

func TestNewRuntime_KeyFile(t *testing.T) {
	cfg, infra := setup(t)
	cfg.Auth.Key = ""
	cfg.Auth.KeyPath = filepath.Join(t.TempDir(), "keys", "auth.key")

	_, err := api.NewRuntime(cfg, infra)
	require.NoError(t, err)
	assert.FileExists(t, cfg.Auth.KeyPath)
}

func TestNewRuntime_BadKey(t *testing.T) {
	cfg, infra := setup(t)
	cfg.Auth.Key = "abcd"

	_, err := api.NewRuntime(cfg, infra)
	assert.Error(t, err)
}

func TestNewDomain_WithoutStorage(t *testing.T) {
	cfg, infra := setup(t)
	runtime, err := api.NewRuntime(cfg, infra)
	require.NoError(t, err)

	domain := api.NewDomain(runtime)
	assert.NotNil(t, domain.Users)
	assert.NotNil(t, domain.Prompts)
	assert.NotNil(t, domain.Tags)
	assert.NotNil(t, domain.Notes)
	assert.Nil(t, domain.Exports)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	m := newModule(t)

	cases := []struct{ method, target string }{
		{"GET", "/api/prompts"},
		{"POST", "/api/prompts"},
		{"GET", "/api/prompts/prm_1"},
		{"GET", "/api/search?q=x"},
		{"GET", "/api/tags"},
		{"GET", "/api/notes/nte_1"},
		{"GET", "/api/auth/me"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := serve(m, tc.method, tc.target)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInvalidSessionTreatedAsAnonymous(t *testing.T) {
	m := newModule(t)

	req := httptest.NewRequest("GET", "/api/prompts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestShareRedirectsAnonymousToLogin(t *testing.T) {
	m := newModule(t)

	req := httptest.NewRequest("POST", "/api/share", strings.NewReader("text=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	m.Serve(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestOpenAPIDocument(t *testing.T) {
	m := newModule(t)

	rec := serve(m, "GET", "/api/openapi.json")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths      map[string]map[string]json.RawMessage `json:"paths"`
		Components struct {
			Schemas         map[string]json.RawMessage `json:"schemas"`
			SecuritySchemes map[string]struct {
				Type string `json:"type"`
				In   string `json:"in"`
				Name string `json:"name"`
			} `json:"securitySchemes"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	for _, path := range []string{
		"/api/auth/login",
		"/api/prompts",
		"/api/prompts/{id}",
		"/api/prompts/{id}/favorite",
		"/api/prompts/{id}/tags",
		"/api/search",
		"/api/share",
		"/api/tags",
		"/api/notes/{id}",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.NotContains(t, doc.Paths, "/api/exports")

	assert.Contains(t, doc.Components.Schemas, "Prompt")
	assert.Contains(t, doc.Components.Schemas, "Tag")

	session := doc.Components.SecuritySchemes["session"]
	assert.Equal(t, "apiKey", session.Type)
	assert.Equal(t, "cookie", session.In)
	assert.Equal(t, "prompt_manager_session", session.Name)
}
