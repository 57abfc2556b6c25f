package http

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity headers. Authentication itself happens upstream; these
// carry the authenticated identity and role into the service.
const (
	headerUserID   = "X-USER-ID"
	headerUserRole = "X-USER-ROLE"
)

// Roles recognized by the delivery endpoints.
const (
	RoleAdmin = "ADMIN"
	RoleRider = "RIDER"
)

// actor is the authenticated caller of a guarded endpoint.
type actor struct {
	ID   kernel.UUID
	Role string
}

// actorFromRequest reads the actor identity from the request headers.
func actorFromRequest(ctx echo.Context) (actor, error) {
	rawID := ctx.Request().Header.Get(headerUserID)
	if rawID == "" {
		return actor{}, errs.NewValueIsRequiredError(headerUserID)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor{}, errs.NewValueIsInvalidErrorWithCause(headerUserID, err)
	}

	role := ctx.Request().Header.Get(headerUserRole)
	if role == "" {
		return actor{}, errs.NewValueIsRequiredError(headerUserRole)
	}

	return actor{ID: id, Role: role}, nil
}

// requireRole rejects the actor unless it holds one of the given roles.
func (a actor) requireRole(resource string, roles ...string) error {
	for _, role := range roles {
		if a.Role == role {
			return nil
		}
	}
	return errs.NewUnauthorizedError("role "+a.Role, resource)
}
