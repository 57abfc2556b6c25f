package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/metrics"
)

// RetryNotificationCommandHandler handles manual retries. Only Failed
// records are retryable; the retry counter increments and fan-out runs
// again over all channels.
type RetryNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	dispatcher services.NotificationDispatcher
	logger     *slog.Logger
}

// NewRetryNotificationCommandHandler creates a handler for manual retries.
func NewRetryNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	dispatcher services.NotificationDispatcher,
	logger *slog.Logger,
) RetryNotificationCommandHandler {
	return RetryNotificationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle re-runs fan-out for a failed notification and returns the record
// with its new outcome.
func (h RetryNotificationCommandHandler) Handle(
	ctx context.Context, cmd RetryNotificationCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.markRetrying(ctx, cmd)
	if err != nil {
		return nil, err
	}

	channel, dispatchErr := h.dispatcher.Dispatch(ctx, aggregate)
	if dispatchErr != nil {
		aggregate.MarkFailed(dispatchErr.Error())
	} else {
		aggregate.MarkSuccess(channel)
	}

	if err = h.saveRetryOutcome(ctx, aggregate); err != nil {
		return nil, err
	}

	metrics.NotificationsProcessedTotal.WithLabelValues(aggregate.Status().String()).Inc()

	h.logger.InfoContext(ctx, "notification retried",
		"notificationId", aggregate.ID().String(),
		"retryCount", aggregate.RetryCount(),
		"status", aggregate.Status().String())

	return aggregate, nil
}

func (h RetryNotificationCommandHandler) markRetrying(
	ctx context.Context, cmd RetryNotificationCommand,
) (*notification.Notification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()
	aggregate, err := notificationRepo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.PrepareRetry(); err != nil {
		return nil, err
	}

	if err = notificationRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h RetryNotificationCommandHandler) saveRetryOutcome(
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
