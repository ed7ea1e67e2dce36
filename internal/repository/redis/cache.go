package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/joanmiespada/backender/internal/core/port"
)

const scanBatchSize = 100

// Cache implements port.Cache on top of a Redis client. All keys share a
// prefix so several services can coexist on one Redis database.
type Cache struct {
	client *red.Client
	prefix string
}

// NewCache wires a Redis client into a cache adapter.
func NewCache(client *red.Client, keyPrefix string) *Cache {
	return &Cache{client: client, prefix: strings.TrimSpace(keyPrefix)}
}

// Get returns the value stored at key, or port.ErrCacheMiss when absent.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return "", port.ErrCacheMiss
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Set stores value at key with the supplied TTL.
func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, c.key(key))
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeleteByPattern removes every key matching the glob-style pattern using
// SCAN, so list-query entries can be invalidated coarsely without blocking
// the server the way KEYS would.
func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, c.key(pattern), scanBatchSize).Iterator()

	batch := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis del batch: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %q: %w", pattern, err)
	}

	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis del batch: %w", err)
		}
	}

	return nil
}

func (c *Cache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

var _ port.Cache = (*Cache)(nil)
