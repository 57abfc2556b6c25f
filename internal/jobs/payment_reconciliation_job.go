package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reconciliationSchedule runs the job every 30 seconds. Frequent enough for
// orders stuck in PAYMENT_PENDING to settle shortly after the payment
// provider recovers, without hammering it while the breaker probes.
const reconciliationSchedule = "*/30 * * * * *"

// PaymentReconciliationJob periodically re-drives payment for orders left
// in PAYMENT_PENDING by a provider outage during checkout.
type PaymentReconciliationJob struct {
	handler commands.SettlePendingPaymentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPaymentReconciliationJob creates the reconciliation job.
func NewPaymentReconciliationJob(
	handler commands.SettlePendingPaymentsCommandHandler,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payment_reconciliation_job"),
	}
}

// Start begins the reconciliation job on its schedule.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(reconciliationSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewSettlePendingPaymentsCommand()

		settled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment reconciliation run failed", "error", err)
			return
		}

		if settled > 0 {
			j.logger.InfoContext(ctx, "Payment reconciliation settled pending orders", "settled", settled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started (running every 30 seconds)")
	return nil
}

// Stop stops the reconciliation job.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}
