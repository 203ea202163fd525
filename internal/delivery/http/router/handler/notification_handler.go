package handler

import (
	"log/slog"
	"net/http"

	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/response"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for the notification read model.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListOwn handles listing the calling account's notifications.
func (h *NotificationHandler) ListOwn(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	limit, offset := paginationParams(c)
	notifications, err := h.uc.ListOwn(c.Request().Context(), actor.UserID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications listed")
}

// MarkRead handles flagging one of the account's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid notification ID")
	}

	if err := h.uc.MarkRead(c.Request().Context(), actor.UserID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked read")
}
