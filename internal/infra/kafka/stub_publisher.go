package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Used when no
// brokers are configured and in development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserCreated logs user.created events.
func (p *StubPublisher) PublishUserCreated(_ context.Context, event domain.UserCreatedEvent) error {
	p.logEvent(eventUserCreated, event.CreatedAt, map[string]any{
		"user_id":     event.UserID,
		"external_id": event.ExternalID,
	})
	return nil
}

// PublishUserDeleted logs user.deleted events.
func (p *StubPublisher) PublishUserDeleted(_ context.Context, event domain.UserDeletedEvent) error {
	p.logEvent(eventUserDeleted, event.DeletedAt, map[string]any{
		"user_id": event.UserID,
	})
	return nil
}

// PublishRoleCreated logs role.created events.
func (p *StubPublisher) PublishRoleCreated(_ context.Context, event domain.RoleCreatedEvent) error {
	p.logEvent(eventRoleCreated, event.CreatedAt, map[string]any{
		"role_id": event.RoleID,
		"name":    event.Name,
	})
	return nil
}

// PublishRoleUpdated logs role.updated events.
func (p *StubPublisher) PublishRoleUpdated(_ context.Context, event domain.RoleUpdatedEvent) error {
	p.logEvent(eventRoleUpdated, event.UpdatedAt, map[string]any{
		"role_id": event.RoleID,
		"name":    event.Name,
	})
	return nil
}

// PublishRoleDeleted logs role.deleted events.
func (p *StubPublisher) PublishRoleDeleted(_ context.Context, event domain.RoleDeletedEvent) error {
	p.logEvent(eventRoleDeleted, event.DeletedAt, map[string]any{
		"role_id": event.RoleID,
	})
	return nil
}

// PublishRoleAssigned logs user.role.assigned events.
func (p *StubPublisher) PublishRoleAssigned(_ context.Context, event domain.RoleAssignedEvent) error {
	p.logEvent(eventRoleAssigned, event.AssignedAt, map[string]any{
		"user_id": event.UserID,
		"role_id": event.RoleID,
	})
	return nil
}

// PublishRoleUnassigned logs user.role.unassigned events.
func (p *StubPublisher) PublishRoleUnassigned(_ context.Context, event domain.RoleUnassignedEvent) error {
	p.logEvent(eventRoleUnassigned, event.UnassignedAt, map[string]any{
		"user_id": event.UserID,
		"role_id": event.RoleID,
	})
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
