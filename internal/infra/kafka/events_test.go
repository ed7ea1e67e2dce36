package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap/zaptest"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/infra/config"
)

type fakeAsyncProducer struct {
	input  chan *sarama.ProducerMessage
	errors chan *sarama.ProducerError
}

func newFakeAsyncProducer() *fakeAsyncProducer {
	return &fakeAsyncProducer{
		input:  make(chan *sarama.ProducerMessage, 1),
		errors: make(chan *sarama.ProducerError, 1),
	}
}

func (f *fakeAsyncProducer) AsyncClose() {}

func (f *fakeAsyncProducer) Close() error { return nil }

func (f *fakeAsyncProducer) Input() chan<- *sarama.ProducerMessage { return f.input }

func (f *fakeAsyncProducer) Successes() <-chan *sarama.ProducerMessage { return nil }

func (f *fakeAsyncProducer) Errors() <-chan *sarama.ProducerError { return f.errors }

func (f *fakeAsyncProducer) IsTransactional() bool { return false }

func (f *fakeAsyncProducer) BeginTxn() error { return nil }

func (f *fakeAsyncProducer) CommitTxn() error { return nil }

func (f *fakeAsyncProducer) AbortTxn() error { return nil }

func (f *fakeAsyncProducer) AddOffsetsToTxn(offsets map[string][]*sarama.PartitionOffsetMetadata, groupID string) error {
	return nil
}

func (f *fakeAsyncProducer) AddMessageToTxn(msg *sarama.ConsumerMessage, groupID string, metadata *string) error {
	return nil
}

func (f *fakeAsyncProducer) TxnStatus() sarama.ProducerTxnStatusFlag {
	return sarama.ProducerTxnStatusFlag(0)
}

func newTestPublisher(t *testing.T, asyncProducer sarama.AsyncProducer) *EventPublisher {
	t.Helper()

	producer := &Producer{
		producer: asyncProducer,
		logger:   zaptest.NewLogger(t),
		cfg: config.KafkaSettings{
			TopicPrefix: "users",
		},
		errChan: make(chan error, 1),
		done:    make(chan struct{}),
	}

	return NewEventPublisher(producer, config.AppSettings{
		Name: "backender",
		Env:  "test",
	}, zaptest.NewLogger(t))
}

func TestPublishUserCreated(t *testing.T) {
	asyncProducer := newFakeAsyncProducer()
	publisher := newTestPublisher(t, asyncProducer)

	createdAt := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	event := domain.UserCreatedEvent{
		UserID:     "user-123",
		ExternalID: "keycloak-7f3a",
		CreatedAt:  createdAt,
	}

	if err := publisher.PublishUserCreated(context.Background(), event); err != nil {
		t.Fatalf("PublishUserCreated returned error: %v", err)
	}

	select {
	case msg := <-asyncProducer.input:
		if msg.Topic != "users.user.created" {
			t.Fatalf("unexpected topic: %s", msg.Topic)
		}

		bytes, err := msg.Value.Encode()
		if err != nil {
			t.Fatalf("Value.Encode returned error: %v", err)
		}

		var envelope map[string]any
		if err := json.Unmarshal(bytes, &envelope); err != nil {
			t.Fatalf("failed to unmarshal envelope: %v", err)
		}

		if got := envelope["event_type"]; got != "user.created" {
			t.Fatalf("unexpected event_type: %v", got)
		}
		if envelope["event_id"] == "" {
			t.Fatal("expected generated event_id")
		}
		if got := envelope["version"]; got != "1.0" {
			t.Fatalf("unexpected schema version: %v", got)
		}

		timestamp, ok := envelope["timestamp"].(string)
		if !ok {
			t.Fatalf("timestamp not a string: %T", envelope["timestamp"])
		}
		if timestamp != createdAt.Format(time.RFC3339Nano) {
			t.Fatalf("unexpected timestamp: %s", timestamp)
		}

		payload, ok := envelope["payload"].(map[string]any)
		if !ok {
			t.Fatalf("payload not a map: %T", envelope["payload"])
		}
		if got := payload["user_id"]; got != event.UserID {
			t.Fatalf("unexpected user_id: %v", got)
		}
		if got := payload["external_id"]; got != event.ExternalID {
			t.Fatalf("unexpected external_id: %v", got)
		}

		metadata, ok := envelope["metadata"].(map[string]any)
		if !ok {
			t.Fatalf("metadata not a map: %T", envelope["metadata"])
		}
		if metadata["service"] != "backender" {
			t.Fatalf("unexpected metadata service: %v", metadata["service"])
		}
		if metadata["environment"] != "test" {
			t.Fatalf("unexpected metadata environment: %v", metadata["environment"])
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message on async producer input channel")
	}
}

func TestPublishRoleAssigned(t *testing.T) {
	asyncProducer := newFakeAsyncProducer()
	publisher := newTestPublisher(t, asyncProducer)

	assignedAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	event := domain.RoleAssignedEvent{
		UserID:     "user-123",
		RoleID:     "role-456",
		AssignedAt: assignedAt,
	}

	if err := publisher.PublishRoleAssigned(context.Background(), event); err != nil {
		t.Fatalf("PublishRoleAssigned returned error: %v", err)
	}

	select {
	case msg := <-asyncProducer.input:
		if msg.Topic != "users.user.role.assigned" {
			t.Fatalf("unexpected topic: %s", msg.Topic)
		}

		bytes, err := msg.Value.Encode()
		if err != nil {
			t.Fatalf("Value.Encode returned error: %v", err)
		}

		var envelope map[string]any
		if err := json.Unmarshal(bytes, &envelope); err != nil {
			t.Fatalf("failed to unmarshal envelope: %v", err)
		}

		payload, ok := envelope["payload"].(map[string]any)
		if !ok {
			t.Fatalf("payload not a map: %T", envelope["payload"])
		}
		if got := payload["user_id"]; got != event.UserID {
			t.Fatalf("unexpected user_id: %v", got)
		}
		if got := payload["role_id"]; got != event.RoleID {
			t.Fatalf("unexpected role_id: %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message on async producer input channel")
	}
}

func TestProducer_TopicName(t *testing.T) {
	producer := &Producer{cfg: config.KafkaSettings{TopicPrefix: "users"}}

	if got := producer.TopicName("user.created"); got != "users.user.created" {
		t.Errorf("expected prefixed topic, got %s", got)
	}
	if got := producer.TopicName("users.user.created"); got != "users.user.created" {
		t.Errorf("expected already-prefixed topic unchanged, got %s", got)
	}

	bare := &Producer{cfg: config.KafkaSettings{}}
	if got := bare.TopicName("user.created"); got != "user.created" {
		t.Errorf("expected unprefixed topic, got %s", got)
	}
}
