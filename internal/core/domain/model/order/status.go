package order

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the checkout workflow:
//
//	Created ──> PaymentPending ──┬──> Paid ──────────┬──> Confirmed ──> Delivered
//	                             └──> PaymentFailed ─┘
//
// Cancelled is reachable from every state except Delivered and Cancelled
// itself. Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial in-memory status before the order row is persisted.
	Created

	// PaymentPending means the order row is persisted and the payment call
	// has not produced a terminal outcome. Orders survive in this status
	// when the payment gate is unreachable.
	PaymentPending

	// Paid means the payment gate reported a successful settlement.
	Paid

	// Confirmed means the restaurant accepted the order; it is now eligible
	// for delivery assignment.
	Confirmed

	// PaymentFailed means the payment gate reported a failed settlement.
	PaymentFailed

	// Cancelled is a terminal status reachable from any non-terminal state.
	Cancelled

	// Delivered is the terminal success status.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Created:        "CREATED",
		PaymentPending: "PAYMENT_PENDING",
		Paid:           "PAID",
		Confirmed:      "CONFIRMED",
		PaymentFailed:  "PAYMENT_FAILED",
		Cancelled:      "CANCELLED",
		Delivered:      "DELIVERED",
	}
}

// transitions defines the allowed edges of the order state machine.
// Any edge not listed here fails with an InvalidStateTransitionError.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Created:        {PaymentPending, Cancelled},
		PaymentPending: {Paid, PaymentFailed, Cancelled},
		Paid:           {Confirmed, Cancelled},
		PaymentFailed:  {Confirmed, Cancelled},
		Confirmed:      {Delivered, Cancelled},
		Cancelled:      {},
		Delivered:      {},
	}
}

// ParseStatus converts a wire-format status name to a Status.
// Parsing is case-insensitive and rejects unknown names.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("order status " + s)
}

// Validate checks if the Status value is a defined, non-Unknown status.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidError("order status")
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the edge from s to target exists in the
// state machine.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the edge is allowed, or an
// InvalidStateTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), target.String())
	}
	return target, nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// IsEligibleForDelivery reports whether a delivery may be assigned to an
// order in this status.
func (s Status) IsEligibleForDelivery() bool {
	return s == Confirmed || s == Paid
}
