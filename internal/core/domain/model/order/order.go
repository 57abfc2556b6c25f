package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the order-fulfillment workflow. It owns the
// order state machine: after creation, the status is the only field that
// mutates (besides the update timestamp), and every mutation goes through a
// transition method that consults the state machine in status.go.
//
// Orders are never physically deleted; Cancelled and Delivered are terminal.
type Order struct {
	id             kernel.UUID
	userID         kernel.UUID
	customerName   string
	restaurantName string
	totalAmount    decimal.Decimal
	status         Status
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOrder creates an Order in Created status with validation.
// The total amount must be positive; names are required because they are
// denormalized onto the order row for display.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	customerName string,
	restaurantName string,
	totalAmount decimal.Decimal,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setCustomerName(customerName),
		o.setRestaurantName(restaurantName),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without replaying
// transitions. The stored status must be valid.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	customerName string,
	restaurantName string,
	totalAmount decimal.Decimal,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(id, userID, customerName, restaurantName, totalAmount)
	if err != nil {
		return nil, err
	}

	o.status = status
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order was constructed through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the owning user's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// CustomerName returns the denormalized customer display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// RestaurantName returns the denormalized restaurant display name.
func (o *Order) RestaurantName() string {
	return o.restaurantName
}

// TotalAmount returns the monetary total of the order.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AwaitPayment moves the order to PaymentPending. This happens before the
// payment gate is invoked so the order row survives a payment call that
// never returns.
func (o *Order) AwaitPayment() error {
	return o.changeStatus(PaymentPending)
}

// MarkPaid records a successful payment outcome.
func (o *Order) MarkPaid() error {
	return o.changeStatus(Paid)
}

// MarkPaymentFailed records a failed payment outcome.
func (o *Order) MarkPaymentFailed() error {
	return o.changeStatus(PaymentFailed)
}

// Confirm records restaurant acceptance, making the order eligible for
// delivery assignment.
func (o *Order) Confirm() error {
	return o.changeStatus(Confirmed)
}

// MarkDelivered records completion of the delivery. A Paid order whose
// delivery was assigned before restaurant confirmation passes through
// Confirmed on the way to Delivered.
func (o *Order) MarkDelivered() error {
	if o.status == Paid {
		if err := o.changeStatus(Confirmed); err != nil {
			return err
		}
	}
	return o.changeStatus(Delivered)
}

// Cancel moves the order to Cancelled. Cancelling a Delivered order or
// re-cancelling a Cancelled order fails with an InvalidStateTransitionError.
func (o *Order) Cancel() error {
	return o.changeStatus(Cancelled)
}

// ChangeStatus is the administrative override used by the status update
// operation. It still honors the state machine.
func (o *Order) ChangeStatus(target Status) error {
	return o.changeStatus(target)
}

func (o *Order) changeStatus(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.userID = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setRestaurantName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("restaurantName")
	}
	o.restaurantName = name
	return nil
}

func (o *Order) setTotalAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("totalAmount")
	}
	o.totalAmount = amount
	return nil
}
