package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/JaimeStill/promptvault/internal/users"
)

const (
	tokenIssuer   = "promptvault"
	tokenAudience = "promptvault-session"
)

// Claims are the decrypted contents of a session token.
type Claims struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	TokenID    string    `json:"jti"`
	Expiration time.Time `json:"exp"`
}

type tokenService struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
	now func() time.Time
}

func newTokenService(key []byte, ttl time.Duration) (*tokenService, error) {
	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("create session key: %w", err)
	}
	return &tokenService{key: k, ttl: ttl, now: time.Now}, nil
}

// issue returns an encrypted v4.local token for u and its claims.
func (s *tokenService) issue(u users.User) (string, Claims, error) {
	now := s.now()
	claims := Claims{
		UserID:     u.ID,
		Email:      u.Email,
		TokenID:    uuid.NewString(),
		Expiration: now.Add(s.ttl),
	}

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(u.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(claims.Expiration)
	token.SetJti(claims.TokenID)

	if err := token.Set("user_id", claims.UserID); err != nil {
		return "", Claims{}, fmt.Errorf("set user_id claim: %w", err)
	}
	if err := token.Set("email", claims.Email); err != nil {
		return "", Claims{}, fmt.Errorf("set email claim: %w", err)
	}

	return token.V4Encrypt(s.key, nil), claims, nil
}

// verify decrypts token and checks issuer, audience, and validity window.
func (s *tokenService) verify(token string) (*Claims, error) {
	now := s.now()

	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(now))

	parsed, err := parser.ParseV4Local(s.key, token, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(parsed.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if claims.UserID == "" || claims.TokenID == "" {
		return nil, fmt.Errorf("invalid token: missing claims")
	}

	return &claims, nil
}
