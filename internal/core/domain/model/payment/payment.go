// Package payment contains the Payment outcome record.
package payment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through the NewPayment or RestorePayment factory functions.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is an immutable record of a single payment attempt against an
// order. An order may accumulate several payments over its lifetime (the
// pending-payment reconciliation job retries unsettled orders), so the
// order reference is deliberately not unique.
type Payment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	amount      decimal.Decimal
	status      Status
	paymentTime time.Time

	isConstructed bool
}

// NewPayment creates a Payment record with validation.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	status Status,
) (*Payment, error) {
	p := &Payment{
		paymentTime:   time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setStatus(status),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	status Status,
	paymentTime time.Time,
) (*Payment, error) {
	p, err := NewPayment(id, orderID, amount, status)
	if err != nil {
		return nil, err
	}

	p.paymentTime = paymentTime
	return p, nil
}

// Validate ensures the Payment was constructed through a factory function.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// IsEqual compares two payments by identity.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the order this payment settles.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the charged amount.
func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

// Status returns the terminal outcome of the attempt.
func (p *Payment) Status() Status {
	return p.status
}

// PaymentTime returns when the attempt completed.
func (p *Payment) PaymentTime() time.Time {
	return p.paymentTime
}

// IsSuccessful reports whether the charge settled.
func (p *Payment) IsSuccessful() bool {
	return p.status == Success
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.orderID = id
	return nil
}

func (p *Payment) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	p.amount = amount
	return nil
}

func (p *Payment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
