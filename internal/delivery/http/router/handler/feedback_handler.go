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

// FeedbackHandler holds dependencies for citizen feedback handlers.
type FeedbackHandler struct {
	uc     usecase.FeedbackUsecase
	logger *slog.Logger
}

// NewFeedbackHandler is the constructor for FeedbackHandler, injected by Fx.
func NewFeedbackHandler(uc usecase.FeedbackUsecase, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitFeedbackRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
}

// Submit handles submission of a new feedback entry.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid feedback input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feedback, err := h.uc.Submit(c.Request().Context(), usecase.SubmitFeedbackInput{
		Actor:    actor,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, feedback, "Feedback submitted")
}

type respondFeedbackRequest struct {
	Response string `json:"response" validate:"required"`
}

// Respond handles the administration's reply to a feedback entry.
func (h *FeedbackHandler) Respond(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid feedback ID")
	}

	var req respondFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feedback, err := h.uc.Respond(c.Request().Context(), usecase.RespondFeedbackInput{
		Actor:      actor,
		FeedbackID: feedbackID,
		Response:   req.Response,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, feedback, "Feedback responded")
}

// List handles listing feedback entries visible to the actor.
func (h *FeedbackHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	limit, offset := paginationParams(c)
	feedbacks, err := h.uc.List(c.Request().Context(), actor, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, feedbacks, "Feedback listed")
}
