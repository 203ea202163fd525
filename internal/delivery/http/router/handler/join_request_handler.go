package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/response"
	"commune/internal/domain/entity"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// JoinRequestHandler holds dependencies for the join-household request workflow.
type JoinRequestHandler struct {
	uc     usecase.JoinRequestUsecase
	logger *slog.Logger
}

// NewJoinRequestHandler is the constructor for JoinRequestHandler, injected by Fx.
func NewJoinRequestHandler(uc usecase.JoinRequestUsecase, logger *slog.Logger) *JoinRequestHandler {
	return &JoinRequestHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitJoinRequestRequest struct {
	HouseholdID string `json:"household_id" validate:"required,uuid"`
	Applicant   struct {
		IdentityNumber string `json:"identity_number" validate:"required,len=12,numeric"`
		FullName       string `json:"full_name" validate:"required"`
		BirthDate      string `json:"birth_date" validate:"required"`
		Sex            string `json:"sex" validate:"required"`
		Origin         string `json:"origin"`
		Ethnicity      string `json:"ethnicity"`
		Occupation     string `json:"occupation"`
		Phone          string `json:"phone"`
	} `json:"applicant" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Reason       string `json:"reason"`
}

// Submit handles submission of a new join-household request.
func (h *JoinRequestHandler) Submit(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	var req submitJoinRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid join request input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid household ID")
	}
	birthDate, err := time.Parse("2006-01-02", req.Applicant.BirthDate)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid birth date, expected YYYY-MM-DD")
	}

	request, err := h.uc.Submit(c.Request().Context(), usecase.SubmitJoinRequestInput{
		Actor:       actor,
		HouseholdID: householdID,
		Applicant: entity.ApplicantSnapshot{
			IdentityNumber: req.Applicant.IdentityNumber,
			FullName:       req.Applicant.FullName,
			BirthDate:      birthDate,
			Sex:            entity.Sex(req.Applicant.Sex),
			Origin:         req.Applicant.Origin,
			Ethnicity:      req.Applicant.Ethnicity,
			Occupation:     req.Applicant.Occupation,
			Phone:          req.Applicant.Phone,
		},
		Relationship: entity.Relationship(req.Relationship),
		Reason:       req.Reason,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Join request submitted")
}

type decideJoinRequestRequest struct {
	Decision      string `json:"decision" validate:"required,oneof=approve reject"`
	RejectionNote string `json:"rejection_note"`
}

// Decide handles the approval or rejection of a pending join request.
func (h *JoinRequestHandler) Decide(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	var req decideJoinRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid decision input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.uc.Decide(c.Request().Context(), usecase.DecideJoinRequestInput{
		Actor:         actor,
		RequestID:     requestID,
		Decision:      usecase.Decision(req.Decision),
		RejectionNote: req.RejectionNote,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Join request decided")
}

// Get handles retrieval of a single join request.
func (h *JoinRequestHandler) Get(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	request, err := h.uc.Get(c.Request().Context(), actor, requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Join request retrieved")
}

// List handles listing join requests visible to the actor.
func (h *JoinRequestHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	limit, offset := paginationParams(c)
	requests, err := h.uc.List(c.Request().Context(), usecase.ListJoinRequestsInput{
		Actor:  actor,
		State:  entity.JoinRequestState(c.QueryParam("state")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Join requests listed")
}

// paginationParams reads the shared limit/offset query parameters.
func paginationParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))

	return limit, offset
}
