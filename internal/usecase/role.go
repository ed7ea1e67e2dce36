package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/repository"
)

// CreateRole provisions a new role with a unique, trimmed name.
func (s *UserService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	trimmed, err := validateRoleName(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.roles.GetByName(ctx, trimmed); err == nil {
		return nil, ErrRoleNameExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup role by name: %w", err)
	}

	role := domain.Role{
		ID:        uuid.NewString(),
		Name:      trimmed,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.roles.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoleName) {
			return nil, ErrRoleNameExists
		}
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.invalidate(ctx, nil, []string{rolesListPattern})

	if s.events != nil {
		s.logPublishError("role.created", s.events.PublishRoleCreated(ctx, domain.RoleCreatedEvent{
			RoleID:    role.ID,
			Name:      role.Name,
			CreatedAt: role.CreatedAt,
		}))
	}

	return &role, nil
}

// GetRole returns the role with the given ID, read through the cache.
func (s *UserService) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	var cached domain.Role
	if s.cacheGet(ctx, roleKey(id), &cached) {
		return &cached, nil
	}

	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("get role: %w", err)
	}

	s.cacheSet(ctx, roleKey(id), role, s.ttls.Role)

	return role, nil
}

// UpdateRole renames a role. Cached per-user role listings may contain the
// old name, so those entries are invalidated along with the role's own keys.
func (s *UserService) UpdateRole(ctx context.Context, id, name string) (*domain.Role, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	trimmed, err := validateRoleName(name)
	if err != nil {
		return nil, err
	}

	if existing, err := s.roles.GetByName(ctx, trimmed); err == nil {
		if existing.ID != id {
			return nil, ErrRoleNameExists
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup role by name: %w", err)
	}

	role := domain.Role{ID: id, Name: trimmed}
	if err := s.roles.Update(ctx, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoleNotFound
		case errors.Is(err, repository.ErrDuplicateRoleName):
			return nil, ErrRoleNameExists
		}
		return nil, fmt.Errorf("update role: %w", err)
	}

	s.invalidate(ctx, []string{roleKey(id)}, []string{rolesListPattern, userRolesPattern})

	updated, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload role: %w", err)
	}

	if s.events != nil {
		s.logPublishError("role.updated", s.events.PublishRoleUpdated(ctx, domain.RoleUpdatedEvent{
			RoleID:    updated.ID,
			Name:      updated.Name,
			UpdatedAt: time.Now().UTC(),
		}))
	}

	return updated, nil
}

// ListRoles returns one page of roles sorted by name.
func (s *UserService) ListRoles(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Role], error) {
	if err := validatePageRequest(page); err != nil {
		return domain.Page[domain.Role]{}, err
	}

	key := rolesListKey(page)
	var cached domain.Page[domain.Role]
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	roles, total, err := s.roles.List(ctx, page)
	if err != nil {
		return domain.Page[domain.Role]{}, fmt.Errorf("list roles: %w", err)
	}

	result := domain.NewPage(roles, total, page)
	s.cacheSet(ctx, key, result, s.ttls.List)

	return result, nil
}

// DeleteRole removes the role and, via cascade, every assignment of it. Every
// user's cached role listing may have contained the role, so the per-user
// role keys are invalidated coarsely.
func (s *UserService) DeleteRole(ctx context.Context, id string) error {
	if err := validateID("id", id); err != nil {
		return err
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("delete role: %w", err)
	}

	s.invalidate(ctx, []string{roleKey(id)}, []string{rolesListPattern, userRolesPattern})

	if s.events != nil {
		s.logPublishError("role.deleted", s.events.PublishRoleDeleted(ctx, domain.RoleDeletedEvent{
			RoleID:    id,
			DeletedAt: time.Now().UTC(),
		}))
	}

	return nil
}
