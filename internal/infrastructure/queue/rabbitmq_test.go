package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

// mockConnection implements amqpConnection for testing.
type mockConnection struct {
	channelFunc  func() (*amqp.Channel, error)
	closeFunc    func() error
	isClosedFunc func() bool
}

func (m *mockConnection) Channel() (*amqp.Channel, error) {
	if m.channelFunc != nil {
		return m.channelFunc()
	}
	return nil, nil
}

func (m *mockConnection) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockConnection) IsClosed() bool {
	if m.isClosedFunc != nil {
		return m.isClosedFunc()
	}
	return false
}

// mockChannel implements amqpChannel for testing.
type mockChannel struct {
	queueDeclareFunc       func(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	publishWithContextFunc func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	closeFunc              func() error
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if m.queueDeclareFunc != nil {
		return m.queueDeclareFunc(name, durable, autoDelete, exclusive, noWait, args)
	}
	return amqp.Queue{Name: name}, nil
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if m.publishWithContextFunc != nil {
		return m.publishWithContextFunc(ctx, exchange, key, mandatory, immediate, msg)
	}
	return nil
}

func (m *mockChannel) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func newTestClient(channel amqpChannel, conn amqpConnection) *Client {
	return &Client{
		conn:    conn,
		channel: channel,
		config:  DefaultClientConfig("amqp://test"),
	}
}

func TestClient_PublishEngagement(t *testing.T) {
	event := repository.EngagementEvent{
		Type:       repository.EventReactionSet,
		VideoID:    uuid.New(),
		UserID:     "user-1",
		Kind:       "LIKE",
		OccurredAt: time.Now(),
	}

	var published amqp.Publishing
	channel := &mockChannel{
		publishWithContextFunc: func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
			if exchange != "" {
				t.Errorf("exchange = %q, want default", exchange)
			}
			if key != "engagement_events" {
				t.Errorf("routing key = %q, want engagement_events", key)
			}
			published = msg
			return nil
		},
	}

	client := newTestClient(channel, &mockConnection{})
	if err := client.PublishEngagement(context.Background(), event); err != nil {
		t.Fatalf("PublishEngagement() unexpected error: %v", err)
	}

	if published.DeliveryMode != amqp.Persistent {
		t.Errorf("DeliveryMode = %v, want Persistent", published.DeliveryMode)
	}

	var got repository.EngagementEvent
	if err := json.Unmarshal(published.Body, &got); err != nil {
		t.Fatalf("failed to unmarshal published body: %v", err)
	}
	if got.Type != event.Type || got.VideoID != event.VideoID || got.Kind != "LIKE" {
		t.Errorf("published event = %+v, want %+v", got, event)
	}
}

func TestClient_PublishEngagement_BrokerError(t *testing.T) {
	channel := &mockChannel{
		publishWithContextFunc: func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
			return errors.New("channel closed")
		},
	}

	client := newTestClient(channel, &mockConnection{})
	err := client.PublishEngagement(context.Background(), repository.EngagementEvent{
		Type:    repository.EventVideoViewed,
		VideoID: uuid.New(),
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNewClientWithConnection_ChannelError(t *testing.T) {
	connClosed := false
	conn := &mockConnection{
		channelFunc: func() (*amqp.Channel, error) {
			return nil, errors.New("no channel")
		},
		closeFunc: func() error {
			connClosed = true
			return nil
		},
	}

	_, err := newClientWithConnection(context.Background(), conn, DefaultClientConfig("amqp://test"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !connClosed {
		t.Error("connection was not closed after channel failure")
	}
}

func TestClient_Close(t *testing.T) {
	channelClosed := false
	connClosed := false

	channel := &mockChannel{
		closeFunc: func() error {
			channelClosed = true
			return nil
		},
	}
	conn := &mockConnection{
		closeFunc: func() error {
			connClosed = true
			return nil
		},
	}

	client := newTestClient(channel, conn)
	if err := client.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	if !channelClosed || !connClosed {
		t.Errorf("Close() channel closed = %v, conn closed = %v, want both", channelClosed, connClosed)
	}
}
