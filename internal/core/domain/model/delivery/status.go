package delivery

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery. A delivery only
// moves forward: Assigned, then PickedUp, then Delivered.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned means a rider has been assigned and counts against the
	// rider's active-delivery capacity.
	Assigned

	// PickedUp means the rider collected the order from the restaurant.
	// Still counts against capacity.
	PickedUp

	// Delivered is the terminal status; the delivery no longer occupies
	// rider capacity.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		Delivered: "DELIVERED",
	}
}

// ActiveStatuses returns the statuses that count against a rider's
// concurrent-delivery capacity.
func ActiveStatuses() []Status {
	return []Status{Assigned, PickedUp}
}

// ParseStatus converts a wire-format status name to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("delivery status " + s)
}

// Validate checks if the Status value is a defined, non-Unknown status.
func (s Status) Validate() error {
	if s != Assigned && s != PickedUp && s != Delivered {
		return errs.NewValueIsInvalidError("delivery status")
	}
	return nil
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether the delivery occupies rider capacity in this status.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp
}
