package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
// Payments are append-only; there is no Update.
type PaymentRepository interface {
	// Add persists a new payment record.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// GetByOrderID retrieves the most recent payment attempt for an order.
	// Returns an ObjectNotFoundError when the order has no payments.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
