// Package cache provides a Redis client with lifecycle coordination.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/promptvault/pkg/lifecycle"
)

// System manages the Redis client and lifecycle coordination.
type System interface {
	// Client returns the underlying Redis client.
	Client() *redis.Client
	// Key prefixes name with the configured key prefix.
	Key(name string) string
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type cache struct {
	client      *redis.Client
	prefix      string
	logger      *slog.Logger
	dialTimeout time.Duration
}

// New creates a cache system. No connection is made until the first command.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	dialTimeout, err := time.ParseDuration(cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse dial_timeout: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	return &cache{
		client:      client,
		prefix:      cfg.KeyPrefix,
		logger:      logger.With("system", "cache"),
		dialTimeout: dialTimeout,
	}, nil
}

func (c *cache) Client() *redis.Client {
	return c.client
}

func (c *cache) Key(name string) string {
	return c.prefix + name
}

func (c *cache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), c.dialTimeout)
		defer cancel()

		if err := c.client.Ping(pingCtx).Err(); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}

		c.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		c.logger.Info("closing cache connection")

		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}

		c.logger.Info("cache connection closed")
	})

	return nil
}

