package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// problem is the JSON error body returned by every endpoint.
type problem struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps a core error to its HTTP status and writes the problem
// body. This is the single place where error kinds meet status codes.
func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)
	return ctx.JSON(status, problem{
		Code:    status,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrOrderNotEligible):
		return http.StatusConflict
	case errors.Is(err, errs.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
