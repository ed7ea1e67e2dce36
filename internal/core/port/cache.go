package port

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss reports that a key was not present in the cache.
var ErrCacheMiss = errors.New("cache: miss")

// Cache exposes the operations the service layer needs from the cache
// backing store. Implementations are never the system of record; every
// failure is safe to absorb and fall through to the repository.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPattern removes every key matching a glob-style pattern.
	// Used for coarse invalidation of list-query entries.
	DeleteByPattern(ctx context.Context, pattern string) error
}
