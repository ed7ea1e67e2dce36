package port

import (
	"context"

	"github.com/joanmiespada/backender/internal/core/domain"
)

// EventPublisher emits directory lifecycle events to downstream consumers.
// Publishing is best-effort; callers log failures and never fail the
// originating operation on a publish error.
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error
	PublishUserDeleted(ctx context.Context, event domain.UserDeletedEvent) error
	PublishRoleCreated(ctx context.Context, event domain.RoleCreatedEvent) error
	PublishRoleUpdated(ctx context.Context, event domain.RoleUpdatedEvent) error
	PublishRoleDeleted(ctx context.Context, event domain.RoleDeletedEvent) error
	PublishRoleAssigned(ctx context.Context, event domain.RoleAssignedEvent) error
	PublishRoleUnassigned(ctx context.Context, event domain.RoleUnassignedEvent) error
}
