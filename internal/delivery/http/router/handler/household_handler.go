package handler

import (
	"log/slog"
	"net/http"
	"time"

	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/response"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HouseholdHandler holds dependencies for household registry handlers.
type HouseholdHandler struct {
	uc     usecase.HouseholdUsecase
	logger *slog.Logger
}

// NewHouseholdHandler is the constructor for HouseholdHandler, injected by Fx.
func NewHouseholdHandler(uc usecase.HouseholdUsecase, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		uc:     uc,
		logger: logger,
	}
}

type createHouseholdRequest struct {
	HeadID       string `json:"head_id" validate:"required,uuid"`
	Address      string `json:"address" validate:"required"`
	RegisteredAt string `json:"registered_at"`
}

// Create handles registration of a new household.
func (h *HouseholdHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	var req createHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid household input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	headID, err := uuid.Parse(req.HeadID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid head resident ID")
	}

	input := usecase.CreateHouseholdInput{
		Actor:   actor,
		HeadID:  headID,
		Address: req.Address,
	}
	if req.RegisteredAt != "" {
		registeredAt, err := time.Parse("2006-01-02", req.RegisteredAt)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid registration date, expected YYYY-MM-DD")
		}
		input.RegisteredAt = registeredAt
	}

	household, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, household, "Household registered")
}

type updateHouseholdRequest struct {
	Address string `json:"address" validate:"required"`
}

// Update handles modification of a household's mutable fields.
func (h *HouseholdHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid household ID")
	}

	var req updateHouseholdRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid household input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	household, err := h.uc.Update(c.Request().Context(), usecase.UpdateHouseholdInput{
		Actor:       actor,
		HouseholdID: householdID,
		Address:     req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, household, "Household updated")
}

// Get handles retrieval of a single household with its members.
func (h *HouseholdHandler) Get(c echo.Context) error {
	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid household ID")
	}

	household, err := h.uc.Get(c.Request().Context(), householdID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, household, "Household retrieved")
}

// List handles listing households.
func (h *HouseholdHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	limit, offset := paginationParams(c)
	households, err := h.uc.List(c.Request().Context(), actor, repository.ListHouseholdsFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, households, "Households listed")
}
