package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/metrics"
)

// recordPaymentOutcome persists a completed payment attempt and the
// resulting order status in one transaction. Shared between checkout and
// the pending-payment reconciliation job.
func recordPaymentOutcome(
	ctx context.Context,
	uowFactory OrderPaymentUoWFactory,
	aggregate *order.Order,
	attempt *payment.Payment,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PaymentRepository().Add(ctx, attempt); err != nil {
		return err
	}

	var transition error
	if attempt.IsSuccessful() {
		transition = aggregate.MarkPaid()
	} else {
		transition = aggregate.MarkPaymentFailed()
	}
	if transition != nil {
		return transition
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	metrics.PaymentOutcomesTotal.WithLabelValues(attempt.Status().String()).Inc()
	return nil
}
