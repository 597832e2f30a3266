// Package auth provides the identity provider: password hashing, encrypted
// session tokens, credential transport, and the register/login/logout endpoints.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/promptvault/internal/users"
)

// Session is an issued session credential.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Provider resolves, issues, and invalidates session credentials.
type Provider interface {
	// Resolve returns the user id carried by a valid credential.
	// Empty, malformed, expired, and revoked credentials report ok == false.
	Resolve(ctx context.Context, credential string) (userID string, ok bool)
	// Issue creates a new session for u.
	Issue(ctx context.Context, u users.User) (Session, error)
	// Invalidate revokes credential. Invalid credentials are ignored.
	Invalidate(ctx context.Context, credential string) error
}

type provider struct {
	tokens      *tokenService
	revocations Revocations
	logger      *slog.Logger
}

// NewProvider creates a Provider issuing sessions that live for ttl.
func NewProvider(key []byte, ttl time.Duration, revocations Revocations, logger *slog.Logger) (Provider, error) {
	tokens, err := newTokenService(key, ttl)
	if err != nil {
		return nil, err
	}

	return &provider{
		tokens:      tokens,
		revocations: revocations,
		logger:      logger.With("system", "auth"),
	}, nil
}

func (p *provider) Resolve(ctx context.Context, credential string) (string, bool) {
	if credential == "" {
		return "", false
	}

	claims, err := p.tokens.verify(credential)
	if err != nil {
		p.logger.Debug("session rejected", "error", err)
		return "", false
	}

	revoked, err := p.revocations.Revoked(ctx, claims.TokenID)
	if err != nil {
		p.logger.Error("revocation check failed", "error", err)
		return "", false
	}
	if revoked {
		return "", false
	}

	return claims.UserID, true
}

func (p *provider) Issue(_ context.Context, u users.User) (Session, error) {
	token, claims, err := p.tokens.issue(u)
	if err != nil {
		return Session{}, fmt.Errorf("issue session: %w", err)
	}

	p.logger.Info("session issued", "user_id", u.ID)
	return Session{Token: token, ExpiresAt: claims.Expiration}, nil
}

func (p *provider) Invalidate(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}

	claims, err := p.tokens.verify(credential)
	if err != nil {
		return nil
	}

	if err := p.revocations.Revoke(ctx, claims.TokenID, claims.Expiration); err != nil {
		return err
	}

	p.logger.Info("session invalidated", "user_id", claims.UserID)
	return nil
}
