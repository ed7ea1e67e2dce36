package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/core/port"
	"github.com/joanmiespada/backender/internal/infra/config"
)

const schemaVersion = "1.0"

const (
	eventUserCreated    = "user.created"
	eventUserDeleted    = "user.deleted"
	eventRoleCreated    = "role.created"
	eventRoleUpdated    = "role.updated"
	eventRoleDeleted    = "role.deleted"
	eventRoleAssigned   = "user.role.assigned"
	eventRoleUnassigned = "user.role.unassigned"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserCreated publishes user.created events.
func (p *EventPublisher) PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error {
	payload := struct {
		UserID     string    `json:"user_id"`
		ExternalID string    `json:"external_id"`
		CreatedAt  time.Time `json:"created_at"`
	}{
		UserID:     event.UserID,
		ExternalID: event.ExternalID,
		CreatedAt:  event.CreatedAt.UTC(),
	}

	return p.publish(ctx, eventUserCreated, event.CreatedAt, payload)
}

// PublishUserDeleted publishes user.deleted events.
func (p *EventPublisher) PublishUserDeleted(ctx context.Context, event domain.UserDeletedEvent) error {
	payload := struct {
		UserID    string    `json:"user_id"`
		DeletedAt time.Time `json:"deleted_at"`
	}{
		UserID:    event.UserID,
		DeletedAt: event.DeletedAt.UTC(),
	}

	return p.publish(ctx, eventUserDeleted, event.DeletedAt, payload)
}

// PublishRoleCreated publishes role.created events.
func (p *EventPublisher) PublishRoleCreated(ctx context.Context, event domain.RoleCreatedEvent) error {
	payload := struct {
		RoleID    string    `json:"role_id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}{
		RoleID:    event.RoleID,
		Name:      event.Name,
		CreatedAt: event.CreatedAt.UTC(),
	}

	return p.publish(ctx, eventRoleCreated, event.CreatedAt, payload)
}

// PublishRoleUpdated publishes role.updated events.
func (p *EventPublisher) PublishRoleUpdated(ctx context.Context, event domain.RoleUpdatedEvent) error {
	payload := struct {
		RoleID    string    `json:"role_id"`
		Name      string    `json:"name"`
		UpdatedAt time.Time `json:"updated_at"`
	}{
		RoleID:    event.RoleID,
		Name:      event.Name,
		UpdatedAt: event.UpdatedAt.UTC(),
	}

	return p.publish(ctx, eventRoleUpdated, event.UpdatedAt, payload)
}

// PublishRoleDeleted publishes role.deleted events.
func (p *EventPublisher) PublishRoleDeleted(ctx context.Context, event domain.RoleDeletedEvent) error {
	payload := struct {
		RoleID    string    `json:"role_id"`
		DeletedAt time.Time `json:"deleted_at"`
	}{
		RoleID:    event.RoleID,
		DeletedAt: event.DeletedAt.UTC(),
	}

	return p.publish(ctx, eventRoleDeleted, event.DeletedAt, payload)
}

// PublishRoleAssigned publishes user.role.assigned events.
func (p *EventPublisher) PublishRoleAssigned(ctx context.Context, event domain.RoleAssignedEvent) error {
	payload := struct {
		UserID     string    `json:"user_id"`
		RoleID     string    `json:"role_id"`
		AssignedAt time.Time `json:"assigned_at"`
	}{
		UserID:     event.UserID,
		RoleID:     event.RoleID,
		AssignedAt: event.AssignedAt.UTC(),
	}

	return p.publish(ctx, eventRoleAssigned, event.AssignedAt, payload)
}

// PublishRoleUnassigned publishes user.role.unassigned events.
func (p *EventPublisher) PublishRoleUnassigned(ctx context.Context, event domain.RoleUnassignedEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		RoleID       string    `json:"role_id"`
		UnassignedAt time.Time `json:"unassigned_at"`
	}{
		UserID:       event.UserID,
		RoleID:       event.RoleID,
		UnassignedAt: event.UnassignedAt.UTC(),
	}

	return p.publish(ctx, eventRoleUnassigned, event.UnassignedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
