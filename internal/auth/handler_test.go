package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptvault/internal/auth"
	"github.com/JaimeStill/promptvault/internal/users"
	"github.com/JaimeStill/promptvault/pkg/routes"
	"github.com/JaimeStill/promptvault/pkg/validation"
)

const cookieName = "prompt_manager_session"

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]users.Credentials
	count int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]users.Credentials)}
}

func (f *fakeUsers) Create(_ context.Context, cmd users.CreateCommand) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email := users.NormalizeEmail(cmd.Email)
	for _, c := range f.byID {
		if c.User.Email == email {
			return nil, users.ErrDuplicate
		}
	}

	f.count++
	u := users.User{
		ID:        "user-" + strings.Repeat("x", f.count),
		Email:     email,
		Name:      cmd.Name,
		CreatedAt: time.Now().UTC(),
	}
	f.byID[u.ID] = users.Credentials{User: u, PasswordHash: cmd.PasswordHash}
	return &u, nil
}

func (f *fakeUsers) Find(_ context.Context, id string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &c.User, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*users.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email = users.NormalizeEmail(email)
	for _, c := range f.byID {
		if c.User.Email == email {
			return &c, nil
		}
	}
	return nil, users.ErrNotFound
}

type fixture struct {
	server   http.Handler
	provider auth.Provider
	users    *fakeUsers
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key := make([]byte, auth.KeyLength)
	provider, err := auth.NewProvider(key, time.Hour, auth.NewMemoryRevocations(), discardLogger())
	require.NoError(t, err)

	us := newFakeUsers()
	h := auth.NewHandler(
		us,
		provider,
		auth.CookieConfig{Name: cookieName},
		validation.New(),
		discardLogger(),
	)

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())

	return &fixture{
		server:   auth.Middleware(provider, cookieName)(mux),
		provider: provider,
		users:    us,
	}
}

func (f *fixture) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func TestRegisterLoginMeLogout(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/auth/register", `{"email":"Ada@Example.com","password":"password1","name":"Ada"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	rec = f.do(t, "GET", "/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user["id"], decode(t, rec)["user"].(map[string]any)["id"])

	rec = f.do(t, "POST", "/auth/login", `{"email":"ada@example.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := sessionCookie(t, rec)

	rec = f.do(t, "POST", "/auth/logout", "", login)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	rec = f.do(t, "GET", "/auth/me", "", login)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, "GET", "/auth/me", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code, "other sessions stay valid")
}

func TestRegisterFailures(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/auth/register", `{"email":"a@example.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad email", `{"email":"nope","password":"password1"}`, http.StatusBadRequest},
		{"short password", `{"email":"b@example.com","password":"short"}`, http.StatusBadRequest},
		{"missing password", `{"email":"b@example.com"}`, http.StatusBadRequest},
		{"duplicate email", `{"email":"A@example.com","password":"password1"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, "POST", "/auth/register", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["error"])
		})
	}
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/auth/register", `{"email":"a@example.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing fields", `{}`, http.StatusBadRequest},
		{"missing password", `{"email":"a@example.com"}`, http.StatusBadRequest},
		{"wrong password", `{"email":"a@example.com","password":"password2"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"z@example.com","password":"password1"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, "POST", "/auth/login", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestMeAnonymous(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "GET", "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", decode(t, rec)["error"])

	rec = f.do(t, "GET", "/auth/me", "", &http.Cookie{Name: cookieName, Value: "v4.local.bogus"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "POST", "/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
