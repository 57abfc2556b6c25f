package notification

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the processing state of a notification record.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Pending means the record exists but processing has not started.
	Pending

	// Processing means channel fan-out is underway. A record stuck in this
	// status indicates a consumer crash mid-flight; redelivery of the event
	// is skipped by the idempotency check, so operators can find these rows
	// via the stats endpoint.
	Processing

	// Success means at least one channel accepted the notification.
	Success

	// Failed means every channel rejected the notification. Eligible for
	// manual retry.
	Failed

	// Skipped means the event was a duplicate of an already-processed one.
	Skipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Pending:       "PENDING",
		Processing:    "PROCESSING",
		Success:       "SUCCESS",
		Failed:        "FAILED",
		Skipped:       "SKIPPED",
	}
}

// ParseStatus converts a wire-format status name to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != UnknownStatus && str == name {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidError("notification status " + s)
}

// Validate checks if the Status value is a defined, non-Unknown status.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == UnknownStatus {
		return errs.NewValueIsInvalidError("notification status")
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
