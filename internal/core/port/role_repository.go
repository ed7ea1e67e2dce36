package port

import (
	"context"

	"github.com/joanmiespada/backender/internal/core/domain"
)

// RoleRepository handles role CRUD.
type RoleRepository interface {
	Create(ctx context.Context, role domain.Role) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, role domain.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page domain.PageRequest) ([]domain.Role, int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Role, error)
}

// UserRoleRepository manages the user/role association rows.
type UserRoleRepository interface {
	Assign(ctx context.Context, userID, roleID string) error
	Unassign(ctx context.Context, userID, roleID string) error
}
