package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/promptvault/pkg/handlers"
)

type callerKey struct{}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// CredentialFrom extracts a session credential from the named cookie,
// falling back to an "Authorization: Bearer" header.
func CredentialFrom(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	if scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	return ""
}

// Middleware resolves the request credential and, when valid, attaches the
// caller id to the request context. It never rejects a request.
func Middleware(p Provider, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := p.Resolve(r.Context(), CredentialFrom(r, cookieName)); ok {
				r = r.WithContext(WithCaller(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithCaller returns a context carrying userID as the authenticated caller.
func WithCaller(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// CallerFrom returns the authenticated caller id, if any.
func CallerFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(callerKey{}).(string)
	return userID, ok && userID != ""
}

// RequireCaller returns the caller id or writes a 401 response.
func RequireCaller(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	userID, ok := CallerFrom(r.Context())
	if !ok {
		handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
	}
	return userID, ok
}

// SetSessionCookie writes the session cookie for s.
func SetSessionCookie(w http.ResponseWriter, cfg CookieConfig, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
