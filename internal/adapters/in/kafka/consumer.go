// Package kafka implements the inbound notification consumer. Messages are
// fetched with manual offset commits so a record is only acknowledged after
// processing decided its fate: persisted outcome, duplicate skip, or drop
// after the retry budget. Infrastructure failures leave the offset
// uncommitted and the message is redelivered.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
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

// ConsumerConfig holds the connection and retry settings for the consumer.
type ConsumerConfig struct {
	Broker        string
	GroupID       string
	Topic         string
	Concurrency   int
	MaxAttempts   int
	RetryInterval time.Duration
}

// eventHandler is the processing side the consumer feeds decoded events into.
type eventHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessNotificationCommand) (*notification.Notification, error)
}

// Consumer runs a pool of reader goroutines in one consumer group and feeds
// decoded events into the notification processing command.
type Consumer struct {
	cfg     ConsumerConfig
	handler eventHandler
	logger  *slog.Logger

	readers []*kafkago.Reader
	wg      sync.WaitGroup
}

// NewConsumer creates a consumer. Concurrency and MaxAttempts below 1 are
// raised to 1.
func NewConsumer(
	cfg ConsumerConfig,
	handler eventHandler,
	logger *slog.Logger,
) *Consumer {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return &Consumer{
		cfg:     cfg,
		handler: handler,
		logger:  logger.With("component", "notification-consumer"),
	}
}

// Start launches the reader goroutines. It returns immediately; readers run
// until the context is cancelled or Close is called.
func (c *Consumer) Start(ctx context.Context) {
	for i := 0; i < c.cfg.Concurrency; i++ {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers: []string{c.cfg.Broker},
			GroupID: c.cfg.GroupID,
			Topic:   c.cfg.Topic,
		})
		c.readers = append(c.readers, reader)

		c.wg.Add(1)
		go func(worker int) {
			defer c.wg.Done()
			c.run(ctx, reader, worker)
		}(i)
	}
}

// Close stops all readers and waits for the workers to drain.
func (c *Consumer) Close() error {
	var errs []error
	for _, reader := range c.readers {
		if err := reader.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.wg.Wait()
	return errors.Join(errs...)
}

func (c *Consumer) run(ctx context.Context, reader *kafkago.Reader, worker int) {
	logger := c.logger.With("worker", worker)
	logger.InfoContext(ctx, "notification worker started", "topic", c.cfg.Topic, "group", c.cfg.GroupID)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, kafkago.ErrGroupClosed) {
				logger.InfoContext(ctx, "notification worker stopped")
				return
			}
			logger.ErrorContext(ctx, "fetch failed", "error", err)
			return
		}

		if err := c.process(ctx, logger, msg); err != nil {
			// Infrastructure failure: leave the offset uncommitted so the
			// message is redelivered after a group rebalance or restart.
			logger.ErrorContext(ctx, "event processing failed, message will be redelivered",
				"partition", msg.Partition, "offset", msg.Offset, "error", err)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.ErrorContext(ctx, "offset commit failed", "error", err)
		}
	}
}

// process decides the fate of one message. A nil return acknowledges it:
// the outcome was persisted, the event was a duplicate, it was malformed,
// or the retry budget ran out and it was dropped.
func (c *Consumer) process(ctx context.Context, logger *slog.Logger, msg kafkago.Message) error {
	command, err := c.decode(msg.Value)
	if err != nil {
		logger.WarnContext(ctx, "malformed event discarded",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		return nil
	}

	operation := func() error {
		if _, handleErr := c.handler.Handle(ctx, command); handleErr != nil {
			return handleErr
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewConstantBackOff(c.cfg.RetryInterval),
			uint64(c.cfg.MaxAttempts-1),
		),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		if ctx.Err() != nil {
			return err
		}

		metrics.NotificationsDroppedTotal.Inc()
		logger.ErrorContext(ctx, "event dropped after retry budget",
			"eventType", command.Event().EventType.String(),
			"referenceId", command.Event().ReferenceID.String(),
			"attempts", c.cfg.MaxAttempts,
			"error", err,
		)
	}

	return nil
}

// decode unmarshals the wire document into a processing command. Any
// decoding or validation failure is terminal for the message.
func (c *Consumer) decode(payload []byte) (commands.ProcessNotificationCommand, error) {
	var doc eventDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return commands.ProcessNotificationCommand{}, fmt.Errorf("unmarshal event: %w", err)
	}

	// A blank eventType is malformed input; only non-empty unrecognized
	// names fall back to UnknownEvent.
	if strings.TrimSpace(doc.EventType) == "" {
		return commands.ProcessNotificationCommand{}, errs.NewValueIsRequiredError("eventType")
	}

	referenceID, err := kernel.UUIDFromString(doc.ReferenceID)
	if err != nil {
		return commands.ProcessNotificationCommand{}, fmt.Errorf("parse referenceId: %w", err)
	}

	userID, err := kernel.UUIDFromString(doc.UserID)
	if err != nil {
		return commands.ProcessNotificationCommand{}, fmt.Errorf("parse userId: %w", err)
	}

	event := notification.Event{
		EventType:   notification.ParseEventType(doc.EventType),
		ReferenceID: referenceID,
		UserID:      userID,
		Message:     doc.Message,
		Metadata:    doc.Metadata,
		Timestamp:   doc.Timestamp,
		TraceID:     doc.TraceID,
	}

	return commands.NewProcessNotificationCommand(event)
}
