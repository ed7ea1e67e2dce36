package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/joanmiespada/backender/internal/core/port"
)

// CacheTTLs holds per-entity-kind expirations. Lists churn the most and get
// the shortest lifetime so stale membership is bounded tightly.
type CacheTTLs struct {
	User time.Duration
	Role time.Duration
	List time.Duration
}

// DefaultCacheTTLs mirror the configuration defaults.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		User: 5 * time.Minute,
		Role: 10 * time.Minute,
		List: time.Minute,
	}
}

// UserService orchestrates validation, persistence, cache maintenance, and
// event publication for the user/role directory. The repositories are the
// source of truth; the cache is read-through and write-invalidate, and every
// cache failure degrades to a repository read.
type UserService struct {
	users     port.UserRepository
	roles     port.RoleRepository
	userRoles port.UserRoleRepository
	cache     port.Cache
	ttls      CacheTTLs
	events    port.EventPublisher
	logger    *zap.Logger
}

// NewUserService constructs the directory service. cache and events may be
// nil; the service then skips caching and event publication respectively.
func NewUserService(
	users port.UserRepository,
	roles port.RoleRepository,
	userRoles port.UserRoleRepository,
	cache port.Cache,
	ttls CacheTTLs,
	events port.EventPublisher,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttls.User <= 0 || ttls.Role <= 0 || ttls.List <= 0 {
		defaults := DefaultCacheTTLs()
		if ttls.User <= 0 {
			ttls.User = defaults.User
		}
		if ttls.Role <= 0 {
			ttls.Role = defaults.Role
		}
		if ttls.List <= 0 {
			ttls.List = defaults.List
		}
	}
	return &UserService{
		users:     users,
		roles:     roles,
		userRoles: userRoles,
		cache:     cache,
		ttls:      ttls,
		events:    events,
		logger:    logger,
	}
}

// cacheGet loads and decodes a cached entry into dest. It reports a hit;
// any cache failure is logged and treated as a miss.
func (s *UserService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, port.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		return false
	}

	return true
}

// cacheSet encodes value and stores it under key. Failures are logged only.
func (s *UserService) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, key, string(raw), ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate removes single-entity keys and list patterns. Called strictly
// after the repository write has committed, never before.
func (s *UserService) invalidate(ctx context.Context, keys []string, patterns []string) {
	if s.cache == nil {
		return
	}

	if len(keys) > 0 {
		if err := s.cache.Delete(ctx, keys...); err != nil {
			s.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
		}
	}

	for _, pattern := range patterns {
		if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("cache pattern invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func (s *UserService) logPublishError(event string, err error) {
	if err != nil {
		s.logger.Warn("event publish failed", zap.String("event", event), zap.Error(err))
	}
}
