package payment

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the terminal outcome of a payment attempt. Payments are outcome
// records, not a workflow: a payment row is written exactly once with its
// final status and never updated.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Success means the charge settled.
	Success

	// Failed means the charge was declined.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "UNKNOWN",
		Success: "SUCCESS",
		Failed:  "FAILED",
	}
}

// ParseStatus converts a wire-format status name to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("payment status " + s)
}

// Validate checks if the Status value is a defined, non-Unknown status.
func (s Status) Validate() error {
	if s != Success && s != Failed {
		return errs.NewValueIsInvalidError("payment status")
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
