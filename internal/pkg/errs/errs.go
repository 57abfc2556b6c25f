package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every concrete error
// type in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrCapacityExceeded       = errors.New("capacity exceeded")
	ErrOrderNotEligible       = errors.New("order not eligible")
	ErrServiceUnavailable     = errors.New("service unavailable")
)

// sanitize strips newlines out of values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value was missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateTransitionError indicates that an entity was asked to move
// along an edge that does not exist in its state machine.
type InvalidStateTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidStateTransitionError(entity, from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s cannot go from %s to %s",
		ErrInvalidStateTransition, e.Entity, e.From, e.To))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// UnauthorizedError indicates a role or ownership mismatch for the acting identity.
type UnauthorizedError struct {
	Actor    string
	Resource string
}

func NewUnauthorizedError(actor, resource string) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Resource: resource}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s has no access to %s", ErrUnauthorized, e.Actor, e.Resource))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// CapacityExceededError indicates that a resource is already at its configured limit.
type CapacityExceededError struct {
	Resource string
	Limit    int
}

func NewCapacityExceededError(resource string, limit int) *CapacityExceededError {
	return &CapacityExceededError{Resource: resource, Limit: limit}
}

func (e *CapacityExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s reached limit %d", ErrCapacityExceeded, e.Resource, e.Limit))
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// OrderNotEligibleError indicates that an order is not in a status that
// allows the requested operation.
type OrderNotEligibleError struct {
	OrderID string
	Reason  string
}

func NewOrderNotEligibleError(orderID, reason string) *OrderNotEligibleError {
	return &OrderNotEligibleError{OrderID: orderID, Reason: reason}
}

func (e *OrderNotEligibleError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s (%s)", ErrOrderNotEligible, e.OrderID, e.Reason))
}

func (e *OrderNotEligibleError) Unwrap() error {
	return ErrOrderNotEligible
}

// ServiceUnavailableError indicates that a downstream dependency was
// unreachable or timed out.
type ServiceUnavailableError struct {
	Service string
	Cause   error
}

func NewServiceUnavailableError(service string, cause error) *ServiceUnavailableError {
	return &ServiceUnavailableError{Service: service, Cause: cause}
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrServiceUnavailable, e.Service, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrServiceUnavailable, e.Service))
}

func (e *ServiceUnavailableError) Unwrap() error {
	return ErrServiceUnavailable
}
