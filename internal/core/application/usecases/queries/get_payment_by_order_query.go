package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPaymentByOrderQueryIsNotConstructed = errors.New(
	"GetPaymentByOrderQuery must be created via NewGetPaymentByOrderQuery constructor",
)

// GetPaymentByOrderQuery retrieves the most recent payment attempt for an order.
type GetPaymentByOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentByOrderQuery creates a query for an order's payment.
func NewGetPaymentByOrderQuery(orderID kernel.UUID) (GetPaymentByOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentByOrderQuery{}, err
	}

	return GetPaymentByOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentByOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (q GetPaymentByOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PaymentResponse is the read model for a payment attempt.
type PaymentResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Amount      decimal.Decimal
	Status      string
	PaymentTime time.Time
}
