package handler

import (
	"log/slog"
	"net/http"
	"time"

	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/response"
	"commune/internal/domain/entity"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ResidentHandler holds dependencies for resident registry handlers.
type ResidentHandler struct {
	uc     usecase.ResidentUsecase
	logger *slog.Logger
}

// NewResidentHandler is the constructor for ResidentHandler, injected by Fx.
func NewResidentHandler(uc usecase.ResidentUsecase, logger *slog.Logger) *ResidentHandler {
	return &ResidentHandler{
		uc:     uc,
		logger: logger,
	}
}

type createResidentRequest struct {
	IdentityNumber string `json:"identity_number" validate:"required,len=12,numeric"`
	FullName       string `json:"full_name" validate:"required"`
	BirthDate      string `json:"birth_date" validate:"required"`
	Sex            string `json:"sex" validate:"required"`
	Origin         string `json:"origin"`
	Ethnicity      string `json:"ethnicity"`
	Occupation     string `json:"occupation"`
	Phone          string `json:"phone"`
}

// Create handles direct creation of a resident record.
func (h *ResidentHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	var req createResidentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resident input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid birth date, expected YYYY-MM-DD")
	}

	resident, err := h.uc.Create(c.Request().Context(), usecase.CreateResidentInput{
		Actor:          actor,
		IdentityNumber: req.IdentityNumber,
		FullName:       req.FullName,
		BirthDate:      birthDate,
		Sex:            entity.Sex(req.Sex),
		Origin:         req.Origin,
		Ethnicity:      req.Ethnicity,
		Occupation:     req.Occupation,
		Phone:          req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, resident, "Resident created")
}

type updateResidentRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Occupation string `json:"occupation"`
	Phone      string `json:"phone"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Update handles modification of a resident's mutable fields.
func (h *ResidentHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid resident ID")
	}

	var req updateResidentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resident input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resident, err := h.uc.Update(c.Request().Context(), usecase.UpdateResidentInput{
		Actor:      actor,
		ResidentID: residentID,
		FullName:   req.FullName,
		Occupation: req.Occupation,
		Phone:      req.Phone,
		Status:     entity.ResidentStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, resident, "Resident updated")
}

// Get handles retrieval of a single resident record.
func (h *ResidentHandler) Get(c echo.Context) error {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid resident ID")
	}

	resident, err := h.uc.Get(c.Request().Context(), residentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, resident, "Resident retrieved")
}

// List handles listing resident records.
func (h *ResidentHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	limit, offset := paginationParams(c)
	filter := repository.ListResidentsFilter{
		Status: entity.ResidentStatus(c.QueryParam("status")),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.QueryParam("household_id"); raw != "" {
		householdID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid household ID")
		}
		filter.HouseholdID = &householdID
	}

	residents, err := h.uc.List(c.Request().Context(), actor, filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, residents, "Residents listed")
}
