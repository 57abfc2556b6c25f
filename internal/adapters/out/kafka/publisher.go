// Package kafka implements the outbound event publisher. Domain events from
// order and delivery commands are serialized as JSON and written to the
// notification topic, keyed by referenceId so all events of one order land
// in the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/notification"

	kafkago "github.com/segmentio/kafka-go"
)

// eventDocument is the wire representation of a domain event.
type eventDocument struct {
	EventType   string            `json:"eventType"`
	ReferenceID string            `json:"referenceId"`
	UserID      string            `json:"userId"`
	Message     string            `json:"message,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	TraceID     string            `json:"traceId,omitempty"`
}

// Publisher writes domain events to the notification topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a publisher for the given broker and topic.
func NewPublisher(broker, topic string, logger *slog.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish serializes the event and writes it keyed by referenceId.
func (p *Publisher) Publish(ctx context.Context, event notification.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(eventDocument{
		EventType:   event.EventType.String(),
		ReferenceID: event.ReferenceID.String(),
		UserID:      event.UserID.String(),
		Message:     event.Message,
		Metadata:    event.Metadata,
		Timestamp:   timestamp,
		TraceID:     event.TraceID,
	})
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.ReferenceID.String()),
		Value: payload,
	})
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "event published",
		"eventType", event.EventType.String(),
		"referenceId", event.ReferenceID.String(),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
