// Package redis provides a shared search-response cache backed by a
// Redis server. Entries expire by TTL; capacity is Redis's problem, so
// Set never reports full. Intended for deployments where several
// engine processes serve the same tenants.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure SearchCache implements the interface.
var _ driven.SearchCache = (*SearchCache)(nil)

// Default configuration values.
const (
	DefaultTTL         = 5 * time.Minute
	DefaultDialTimeout = 3 * time.Second
	keyPrefix          = "juricite:search:"
)

// SearchCache is a Redis-backed response cache.
type SearchCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

// NewSearchCache connects to Redis and verifies the connection. A
// non-positive TTL falls back to DefaultTTL.
func NewSearchCache(ctx context.Context, addr string, ttl time.Duration) (*SearchCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("%w: redis address required", domain.ErrInvalidInput)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redisv9.NewClient(&redisv9.Options{
		Addr:        addr,
		DialTimeout: DefaultDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, DefaultDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: pinging redis: %v", domain.ErrUpstream, err)
	}

	return &SearchCache{client: client, ttl: ttl}, nil
}

// Get returns the cached results for a key, or domain.ErrNotFound.
func (c *SearchCache) Get(ctx context.Context, key string) ([]domain.SearchResult, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %v", domain.ErrUpstream, err)
	}

	var results []domain.SearchResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, fmt.Errorf("unmarshalling cached results: %w", err)
	}
	return results, nil
}

// Set stores results under a key with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, results []domain.SearchResult) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *SearchCache) Close() error {
	return c.client.Close()
}
