// Package jobs provides scheduled background tasks for the fulfillment
// service, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PaymentReconciliationJob - Runs every 30 seconds to re-drive payment for
// orders stuck in PAYMENT_PENDING after a payment provider outage.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(settlePendingPaymentsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed reconciliation run is logged and retried on the next tick; the
// settle command itself stops early when the payment gateway is unavailable
// so a dead provider is probed once per run, not once per order.
package jobs
