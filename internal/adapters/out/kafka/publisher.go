// Package kafka publishes order lifecycle events to the message broker.
// Events are emitted after a workflow transaction commits; delivery is
// best effort and failures are reported back to the caller for logging.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ferremas/internal/core/application/usecases/commands"

	"github.com/segmentio/kafka-go"
)

// envelope is the wire format of an order.changed event. Version is bumped
// when the payload shape changes so consumers can dispatch on it.
type envelope struct {
	Version    int       `json:"version"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderEventPublisher writes OrderChangedEvent messages to a single topic,
// keyed by order id so all events of one order land on the same partition
// in order.
type OrderEventPublisher struct {
	writer *kafka.Writer
}

// NewOrderEventPublisher creates a publisher for the given brokers and topic.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish sends a single lifecycle event. The write is synchronous: the
// calling handler decides whether a failure is fatal (it is not, publishing
// happens after commit).
func (p *OrderEventPublisher) Publish(ctx context.Context, event commands.OrderChangedEvent) error {
	payload, err := json.Marshal(envelope{
		Version:    1,
		OrderID:    event.OrderID.String(),
		Status:     event.Status,
		Action:     event.Action,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
