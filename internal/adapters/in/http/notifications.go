package http

import (
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type notificationResponse struct {
	ID             string     `json:"id"`
	EventType      string     `json:"eventType"`
	ReferenceID    string     `json:"referenceId"`
	UserID         string     `json:"userId"`
	Message        string     `json:"message"`
	Channel        string     `json:"channel"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	RetryCount     int        `json:"retryCount"`
	TraceID        string     `json:"traceId,omitempty"`
	EventTimestamp time.Time  `json:"eventTimestamp"`
	CreatedAt      time.Time  `json:"createdAt"`
	ProcessedAt    *time.Time `json:"processedAt,omitempty"`
}

type notificationStatsResponse struct {
	Total      int64 `json:"total"`
	Success    int64 `json:"success"`
	Failed     int64 `json:"failed"`
	Skipped    int64 `json:"skipped"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
}

// GetNotificationsByReference handles
// GET /api/v1/notifications/reference/{referenceId}.
func (s *Server) GetNotificationsByReference(ctx echo.Context) error {
	referenceID, err := pathUUID(ctx, "referenceId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetNotificationsByReferenceQuery(referenceID)
	if err != nil {
		return respondError(ctx, err)
	}

	records, err := s.handlers.GetNotificationsByRef.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notificationsFromReadModels(records))
}

// GetNotificationsByUser handles GET /api/v1/notifications/user/{userId}
// with page/size query parameters.
func (s *Server) GetNotificationsByUser(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return respondError(ctx, err)
	}

	page, err := queryInt(ctx, "page", 0)
	if err != nil {
		return respondError(ctx, err)
	}

	size, err := queryInt(ctx, "size", 20)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetNotificationsByUserQuery(userID, page, size)
	if err != nil {
		return respondError(ctx, err)
	}

	records, err := s.handlers.GetNotificationsByUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notificationsFromReadModels(records))
}

// GetFailedNotifications handles GET /api/v1/notifications/failed.
func (s *Server) GetFailedNotifications(ctx echo.Context) error {
	records, err := s.handlers.GetFailedNotifications.Handle(
		ctx.Request().Context(), queries.NewGetFailedNotificationsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notificationsFromReadModels(records))
}

// GetNotificationStats handles GET /api/v1/notifications/stats.
func (s *Server) GetNotificationStats(ctx echo.Context) error {
	resp, err := s.handlers.GetNotificationStats.Handle(
		ctx.Request().Context(), queries.NewGetNotificationStatsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notificationStatsResponse{
		Total:      resp.Total,
		Success:    resp.Success,
		Failed:     resp.Failed,
		Skipped:    resp.Skipped,
		Pending:    resp.Pending,
		Processing: resp.Processing,
	})
}

// RetryNotification handles POST /api/v1/notifications/{notificationId}/retry.
// Only FAILED records can be re-driven.
func (s *Server) RetryNotification(ctx echo.Context) error {
	notificationID, err := pathUUID(ctx, "notificationId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRetryNotificationCommand(notificationID)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.handlers.RetryNotification.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notificationFromAggregate(record))
}

// queryInt parses an optional integer query parameter.
func queryInt(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func notificationsFromReadModels(records []queries.NotificationResponse) []notificationResponse {
	response := make([]notificationResponse, 0, len(records))
	for _, record := range records {
		response = append(response, notificationResponse{
			ID:             record.ID.String(),
			EventType:      record.EventType,
			ReferenceID:    record.ReferenceID.String(),
			UserID:         record.UserID.String(),
			Message:        record.Message,
			Channel:        record.Channel,
			Status:         record.Status,
			ErrorMessage:   record.ErrorMessage,
			RetryCount:     record.RetryCount,
			TraceID:        record.TraceID,
			EventTimestamp: record.EventTimestamp,
			CreatedAt:      record.CreatedAt,
			ProcessedAt:    record.ProcessedAt,
		})
	}
	return response
}

func notificationFromAggregate(record *notification.Notification) notificationResponse {
	return notificationResponse{
		ID:             record.ID().String(),
		EventType:      record.EventType().String(),
		ReferenceID:    record.ReferenceID().String(),
		UserID:         record.UserID().String(),
		Message:        record.Message(),
		Channel:        record.Channel().String(),
		Status:         record.Status().String(),
		ErrorMessage:   record.ErrorMessage(),
		RetryCount:     record.RetryCount(),
		TraceID:        record.TraceID(),
		EventTimestamp: record.EventTimestamp(),
		CreatedAt:      record.CreatedAt(),
		ProcessedAt:    record.ProcessedAt(),
	}
}
