package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/metrics"
)

// ProcessNotificationCommandHandler handles one consumed event end to end:
// idempotency check, channel fan-out, and outcome recording.
//
// Delivery is at-least-once, so the handler must be idempotent: if a
// non-Skipped record already exists for the event's (referenceID,
// eventType) pair, a Skipped record is written instead of announcing the
// event twice.
//
// Channel failures are not processing failures. A fan-out where every
// channel rejected the notification produces a Failed record eligible for
// manual retry and still returns nil, so the consumer acknowledges the
// message. Only infrastructure errors (storage down) propagate, causing
// the consumer to redeliver.
type ProcessNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	dispatcher services.NotificationDispatcher
	logger     *slog.Logger
}

// NewProcessNotificationCommandHandler creates a handler for consumed events.
func NewProcessNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	dispatcher services.NotificationDispatcher,
	logger *slog.Logger,
) ProcessNotificationCommandHandler {
	return ProcessNotificationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes the event and returns the resulting notification record.
func (h ProcessNotificationCommandHandler) Handle(
	ctx context.Context, cmd ProcessNotificationCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	aggregate, duplicate, err := h.admit(ctx, cmd.Event())
	if err != nil {
		return nil, err
	}
	if duplicate {
		metrics.NotificationsProcessedTotal.WithLabelValues(notification.Skipped.String()).Inc()
		h.logger.InfoContext(ctx, "duplicate event skipped",
			"eventType", cmd.Event().EventType.String(),
			"referenceId", cmd.Event().ReferenceID.String())
		return aggregate, nil
	}

	channel, dispatchErr := h.dispatcher.Dispatch(ctx, aggregate)
	if dispatchErr != nil {
		aggregate.MarkFailed(dispatchErr.Error())
	} else {
		aggregate.MarkSuccess(channel)
	}

	if err = h.saveOutcome(ctx, aggregate); err != nil {
		return nil, err
	}

	metrics.NotificationsProcessedTotal.WithLabelValues(aggregate.Status().String()).Inc()
	metrics.NotificationProcessingDuration.Observe(time.Since(started).Seconds())

	if dispatchErr != nil {
		h.logger.WarnContext(ctx, "all notification channels failed",
			"notificationId", aggregate.ID().String(),
			"error", dispatchErr)
	}

	return aggregate, nil
}

// admit writes the initial record: Skipped for a duplicate event,
// Processing otherwise. Committing before fan-out keeps channel IO out of
// the transaction.
func (h ProcessNotificationCommandHandler) admit(
	ctx context.Context, event notification.Event,
) (*notification.Notification, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()

	processed, err := notificationRepo.ExistsProcessed(ctx, event.ReferenceID, event.EventType)
	if err != nil {
		return nil, false, err
	}

	aggregate, err := notification.NewNotification(kernel.NewUUID(), event)
	if err != nil {
		return nil, false, err
	}

	if processed {
		aggregate.MarkSkipped("Duplicate event")
	} else if err = aggregate.MarkProcessing(); err != nil {
		return nil, false, err
	}

	if err = notificationRepo.Add(ctx, aggregate); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return aggregate, processed, nil
}

func (h ProcessNotificationCommandHandler) saveOutcome(
	ctx context.Context, aggregate *notification.Notification,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
