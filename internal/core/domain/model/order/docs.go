// Package order contains the Order aggregate and its status state machine.
//
// An order moves through a fixed lifecycle: it is Created, awaits payment,
// becomes Paid or PaymentFailed depending on the payment outcome, is then
// Confirmed by the restaurant, and finally Delivered. Cancellation is allowed
// from every non-terminal status. All transitions are enforced by the Status
// type; the aggregate never mutates its status directly.
package order
