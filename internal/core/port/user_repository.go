package port

import (
	"context"

	"github.com/joanmiespada/backender/internal/core/domain"
)

// UserRepository exposes persistence behavior for users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error)
	ListByRole(ctx context.Context, roleID string, page domain.PageRequest) ([]domain.User, int64, error)
}
