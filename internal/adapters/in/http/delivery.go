package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type assignDeliveryRequest struct {
	OrderID string `json:"orderId"`
	RiderID string `json:"riderId"`
}

type deliveryResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"orderId"`
	RiderID     string     `json:"riderId"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assignedAt"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// AssignDelivery handles POST /api/v1/deliveries. Only dispatch admins
// assign riders to orders.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := caller.requireRole("delivery assignment", RoleAdmin); err != nil {
		return respondError(ctx, err)
	}

	var req assignDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("riderId", err))
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID, riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.handlers.AssignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryFromAggregate(aggregate))
}

// GetRiderDeliveries handles GET /api/v1/deliveries/rider/{riderId}.
// Riders see only their own deliveries; admins see any rider's.
func (s *Server) GetRiderDeliveries(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := caller.requireRole("rider deliveries", RoleAdmin, RoleRider); err != nil {
		return respondError(ctx, err)
	}

	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return respondError(ctx, err)
	}

	if caller.Role == RoleRider && !caller.ID.IsEqual(riderID) {
		return respondError(ctx, errs.NewUnauthorizedError(
			"rider "+caller.ID.String(), "deliveries of rider "+riderID.String()))
	}

	activeOnly := ctx.QueryParam("activeOnly") == "true"

	query, err := queries.NewGetRiderDeliveriesQuery(riderID, activeOnly)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveries, err := s.handlers.GetRiderDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]deliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, deliveryResponse{
			ID:          d.ID.String(),
			OrderID:     d.OrderID.String(),
			RiderID:     d.RiderID.String(),
			Status:      d.Status,
			AssignedAt:  d.AssignedAt,
			PickedUpAt:  d.PickedUpAt,
			DeliveredAt: d.DeliveredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// PickupDelivery handles PUT /api/v1/deliveries/{deliveryId}/pickup.
// The acting rider comes from the identity headers; ownership is enforced
// by the aggregate.
func (s *Server) PickupDelivery(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := caller.requireRole("delivery pickup", RoleRider); err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPickupDeliveryCommand(deliveryID, caller.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.handlers.PickupDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromAggregate(aggregate))
}

// DeliverOrder handles PUT /api/v1/deliveries/{deliveryId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	caller, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := caller.requireRole("delivery completion", RoleRider); err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(deliveryID, caller.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromAggregate(aggregate))
}

func deliveryFromAggregate(aggregate *delivery.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:          aggregate.ID().String(),
		OrderID:     aggregate.OrderID().String(),
		RiderID:     aggregate.RiderID().String(),
		Status:      aggregate.Status().String(),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		DeliveredAt: aggregate.DeliveredAt(),
	}
}
