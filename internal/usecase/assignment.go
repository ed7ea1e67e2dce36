package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/repository"
)

// AssignRole moves the (user, role) pair from unassigned to assigned. The
// existence pre-checks give callers precise not-found errors; the composite
// primary key is what actually serializes concurrent duplicate assigns.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) error {
	if err := validateID("user_id", userID); err != nil {
		return err
	}
	if err := validateID("role_id", roleID); err != nil {
		return err
	}

	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return err
	}

	if err := s.userRoles.Assign(ctx, userID, roleID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleAlreadyAssigned):
			return ErrRoleAlreadyAssigned
		case errors.Is(err, repository.ErrNotFound):
			// Parent row vanished between the pre-check and the insert.
			return ErrUserNotFound
		}
		return fmt.Errorf("assign role: %w", err)
	}

	s.invalidate(ctx, []string{userKey(userID), userRolesKey(userID)}, nil)

	if s.events != nil {
		s.logPublishError("user.role.assigned", s.events.PublishRoleAssigned(ctx, domain.RoleAssignedEvent{
			UserID:     userID,
			RoleID:     roleID,
			AssignedAt: time.Now().UTC(),
		}))
	}

	return nil
}

// UnassignRole moves the pair back to unassigned. Unassigning a pair that is
// not assigned is an error, not a no-op, so callers detect state drift.
func (s *UserService) UnassignRole(ctx context.Context, userID, roleID string) error {
	if err := validateID("user_id", userID); err != nil {
		return err
	}
	if err := validateID("role_id", roleID); err != nil {
		return err
	}

	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return err
	}

	if err := s.userRoles.Unassign(ctx, userID, roleID); err != nil {
		if errors.Is(err, repository.ErrRoleNotAssigned) {
			return ErrRoleNotAssigned
		}
		return fmt.Errorf("unassign role: %w", err)
	}

	s.invalidate(ctx, []string{userKey(userID), userRolesKey(userID)}, nil)

	if s.events != nil {
		s.logPublishError("user.role.unassigned", s.events.PublishRoleUnassigned(ctx, domain.RoleUnassignedEvent{
			UserID:       userID,
			RoleID:       roleID,
			UnassignedAt: time.Now().UTC(),
		}))
	}

	return nil
}

// ListRolesForUser returns the roles currently assigned to the user, read
// through the cache. Unknown users yield ErrUserNotFound rather than an
// empty list.
func (s *UserService) ListRolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}

	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var cached []domain.Role
	if s.cacheGet(ctx, userRolesKey(userID), &cached) {
		return cached, nil
	}

	roles, err := s.roles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list roles for user: %w", err)
	}

	s.cacheSet(ctx, userRolesKey(userID), roles, s.ttls.User)

	return roles, nil
}

// ListUsersForRole returns one page of users holding the role. Not cached:
// membership listings churn with every assignment write and the repository
// query is already bounded by the page.
func (s *UserService) ListUsersForRole(ctx context.Context, roleID string, page domain.PageRequest) (domain.Page[domain.User], error) {
	if err := validateID("role_id", roleID); err != nil {
		return domain.Page[domain.User]{}, err
	}
	if err := validatePageRequest(page); err != nil {
		return domain.Page[domain.User]{}, err
	}

	if _, err := s.GetRole(ctx, roleID); err != nil {
		return domain.Page[domain.User]{}, err
	}

	users, total, err := s.users.ListByRole(ctx, roleID, page)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("list users for role: %w", err)
	}

	return domain.NewPage(users, total, page), nil
}
