package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/repository"
)

// CreateUser registers a new user for the supplied identity-provider
// reference. The uniqueness pre-check yields a precise domain error; a race
// that slips past it resolves at the store's unique constraint and maps to
// the same error kind.
func (s *UserService) CreateUser(ctx context.Context, externalID string) (*domain.User, error) {
	if err := validateExternalID(externalID); err != nil {
		return nil, err
	}
	externalID = strings.TrimSpace(externalID)

	if _, err := s.users.GetByExternalID(ctx, externalID); err == nil {
		return nil, ErrExternalIDExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by external id: %w", err)
	}

	user := domain.User{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalID) {
			return nil, ErrExternalIDExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.invalidate(ctx, nil, []string{usersListPattern})

	if s.events != nil {
		s.logPublishError("user.created", s.events.PublishUserCreated(ctx, domain.UserCreatedEvent{
			UserID:     user.ID,
			ExternalID: user.ExternalID,
			CreatedAt:  user.CreatedAt,
		}))
	}

	return &user, nil
}

// GetUser returns the user with the given ID, read through the cache.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	var cached domain.User
	if s.cacheGet(ctx, userKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.cacheSet(ctx, userKey(id), user, s.ttls.User)

	return user, nil
}

// GetUserByExternalID returns the user registered for the identity-provider
// reference. Uncached: the external reference is a secondary lookup used by
// provisioning flows, not the hot read path.
func (s *UserService) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	if err := validateExternalID(externalID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByExternalID(ctx, strings.TrimSpace(externalID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by external id: %w", err)
	}

	return user, nil
}

// ListUsers returns one page of users in stable creation order. Requesting a
// page past the end yields an empty page with the totals intact.
func (s *UserService) ListUsers(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error) {
	if err := validatePageRequest(page); err != nil {
		return domain.Page[domain.User]{}, err
	}

	key := usersListKey(page)
	var cached domain.Page[domain.User]
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	users, total, err := s.users.List(ctx, page)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("list users: %w", err)
	}

	result := domain.NewPage(users, total, page)
	s.cacheSet(ctx, key, result, s.ttls.List)

	return result, nil
}

// DeleteUser removes the user. Association rows are removed atomically with
// it by the store's cascade.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := validateID("id", id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.invalidate(ctx, []string{userKey(id), userRolesKey(id)}, []string{usersListPattern})

	if s.events != nil {
		s.logPublishError("user.deleted", s.events.PublishUserDeleted(ctx, domain.UserDeletedEvent{
			UserID:    id,
			DeletedAt: time.Now().UTC(),
		}))
	}

	return nil
}
