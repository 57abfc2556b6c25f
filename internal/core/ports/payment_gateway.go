package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// PaymentGateway is the outbound contract to the payment provider.
//
// Pay returns the terminal outcome of a charge attempt. A returned error
// means the attempt itself could not complete (provider unreachable,
// timeout, circuit open); a completed attempt that was declined comes back
// as a Failed payment with a nil error.
type PaymentGateway interface {
	Pay(ctx context.Context, orderID kernel.UUID, amount decimal.Decimal) (*payment.Payment, error)
}
