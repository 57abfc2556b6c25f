package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrSettlePendingPaymentsCommandIsNotConstructed = errors.New(
	"SettlePendingPaymentsCommand must be created via NewSettlePendingPaymentsCommand constructor",
)

// SettlePendingPaymentsCommand represents a request to retry payment for
// every order stuck in PaymentPending. Issued periodically by the
// reconciliation job.
type SettlePendingPaymentsCommand struct {
	guard guard.ConstructorGuard
}

// NewSettlePendingPaymentsCommand creates a reconciliation command.
func NewSettlePendingPaymentsCommand() SettlePendingPaymentsCommand {
	return SettlePendingPaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SettlePendingPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrSettlePendingPaymentsCommandIsNotConstructed)
}
