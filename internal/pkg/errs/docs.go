// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateTransitionError: For disallowed status transitions
//   - UnauthorizedError: For role or ownership mismatches
//   - CapacityExceededError: For saturated resources
//   - OrderNotEligibleError: For orders in the wrong status for an operation
//   - ServiceUnavailableError: For unreachable downstream dependencies
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application. The HTTP boundary maps the sentinel
// errors to response codes in a single table; the core only returns typed errors.
package errs
