package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JaimeStill/promptvault/pkg/cache"
)

// Revocations records invalidated session token ids until their expiry.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

type redisRevocations struct {
	cache cache.System
	now   func() time.Time
}

// NewRedisRevocations stores revocations as expiring Redis keys.
func NewRedisRevocations(c cache.System) Revocations {
	return &redisRevocations{cache: c, now: time.Now}
}

func (r *redisRevocations) key(tokenID string) string {
	return r.cache.Key("revoked:" + tokenID)
}

func (r *redisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.cache.Client().Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

func (r *redisRevocations) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.cache.Client().Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenID, err)
	}
	return n > 0, nil
}

type memoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations keeps revocations in process memory.
// Revocations are lost on restart and not shared between instances.
func NewMemoryRevocations() Revocations {
	return &memoryRevocations{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, id)
		}
	}

	if until.After(now) {
		m.entries[tokenID] = until
	}
	return nil
}

func (m *memoryRevocations) Revoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.entries[tokenID]
	return ok && exp.After(m.now()), nil
}
