package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPaymentByOrderQueryHandler reads the latest payment attempt for an order.
type GetPaymentByOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentByOrderQueryHandler creates a handler for payment lookups.
func NewGetPaymentByOrderQueryHandler(db *gorm.DB) GetPaymentByOrderQueryHandler {
	return GetPaymentByOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// has no payment attempts.
func (h GetPaymentByOrderQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentByOrderQuery,
) (PaymentResponse, error) {
	if err := query.Validate(); err != nil {
		return PaymentResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, amount, status, payment_time
		FROM payments
		WHERE order_id = ?
		ORDER BY payment_time DESC
		LIMIT 1
	`, query.OrderID().Bytes()).Row()

	var resp PaymentResponse
	var id, orderID uuid.UUID

	err := row.Scan(&id, &orderID, &resp.Amount, &resp.Status, &resp.PaymentTime)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return PaymentResponse{}, errs.NewObjectNotFoundError("payment for orderId", query.OrderID())
	}
	if err != nil {
		return PaymentResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return PaymentResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return PaymentResponse{}, err
	}

	return resp, nil
}
