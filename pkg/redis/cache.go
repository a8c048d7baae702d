package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a small JSON cache on top of the Redis client. Dashboard stats use
// it so repeated card loads do not re-run the aggregate queries.
type Cache struct {
	client    *Client
	keyPrefix string
	ttl       time.Duration
}

// NewCache creates a cache with the given key prefix and entry TTL.
func NewCache(client *Client, keyPrefix string, ttl time.Duration) *Cache {
	if keyPrefix == "" {
		keyPrefix = "cache:"
	}
	return &Cache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// GetJSON loads and unmarshals the cached value into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, c.keyPrefix+key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached value for %s: %w", key, err)
	}
	return nil
}

// SetJSON marshals and stores value under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}
	return c.client.Set(ctx, c.keyPrefix+key, raw, c.ttl)
}

// Invalidate drops cached entries.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.keyPrefix + k
	}
	return c.client.Del(ctx, prefixed...)
}
