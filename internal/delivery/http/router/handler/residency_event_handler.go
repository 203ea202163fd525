package handler

import (
	"log/slog"
	"net/http"
	"time"

	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/response"
	"commune/internal/domain/entity"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ResidencyEventHandler serves both declaration kinds; the route group the
// handler is mounted under fixes the kind.
type ResidencyEventHandler struct {
	uc     usecase.ResidencyEventUsecase
	logger *slog.Logger
}

// NewResidencyEventHandler is the constructor for ResidencyEventHandler, injected by Fx.
func NewResidencyEventHandler(uc usecase.ResidencyEventUsecase, logger *slog.Logger) *ResidencyEventHandler {
	return &ResidencyEventHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitResidencyEventRequest struct {
	ResidentID string `json:"resident_id" validate:"required,uuid"`
	Location   string `json:"location" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Reason     string `json:"reason"`
	Note       string `json:"note"`
}

// Submit returns a handler that submits a declaration of the given kind.
func (h *ResidencyEventHandler) Submit(kind entity.ResidencyEventKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
		}

		var req submitResidencyEventRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid declaration input")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		residentID, err := uuid.Parse(req.ResidentID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid resident ID")
		}
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid start date, expected YYYY-MM-DD")
		}
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid end date, expected YYYY-MM-DD")
		}

		event, err := h.uc.Submit(c.Request().Context(), usecase.SubmitResidencyEventInput{
			Actor:      actor,
			Kind:       kind,
			ResidentID: residentID,
			Location:   req.Location,
			StartDate:  startDate,
			EndDate:    endDate,
			Reason:     req.Reason,
			Note:       req.Note,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusCreated, event, "Declaration submitted")
	}
}

type decideResidencyEventRequest struct {
	Decision        string `json:"decision" validate:"required,oneof=approve reject"`
	RejectionReason string `json:"rejection_reason"`
}

// Decide handles processing of a pending declaration.
func (h *ResidencyEventHandler) Decide(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid declaration ID")
	}

	var req decideResidencyEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid decision input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.uc.Decide(c.Request().Context(), usecase.DecideResidencyEventInput{
		Actor:           actor,
		EventID:         eventID,
		Decision:        usecase.Decision(req.Decision),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, event, "Declaration processed")
}

// Get handles retrieval of a single declaration.
func (h *ResidencyEventHandler) Get(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid declaration ID")
	}

	event, err := h.uc.Get(c.Request().Context(), actor, eventID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, event, "Declaration retrieved")
}

// List returns a handler that lists declarations of the given kind.
func (h *ResidencyEventHandler) List(kind entity.ResidencyEventKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
		}

		limit, offset := paginationParams(c)
		events, err := h.uc.List(c.Request().Context(), usecase.ListResidencyEventsInput{
			Actor:  actor,
			Kind:   kind,
			State:  entity.ResidencyEventState(c.QueryParam("state")),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, events, "Declarations listed")
	}
}
