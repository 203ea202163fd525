package handler

import (
	"log/slog"
	"net/http"
	"time"

	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/response"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FeeHandler holds dependencies for fee collection handlers.
type FeeHandler struct {
	uc     usecase.FeeUsecase
	logger *slog.Logger
}

// NewFeeHandler is the constructor for FeeHandler, injected by Fx.
func NewFeeHandler(uc usecase.FeeUsecase, logger *slog.Logger) *FeeHandler {
	return &FeeHandler{
		uc:     uc,
		logger: logger,
	}
}

type createFeeItemRequest struct {
	Name      string `json:"name" validate:"required"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Mandatory bool   `json:"mandatory"`
	DueDate   string `json:"due_date"`
}

// CreateItem handles creation of a fee item.
func (h *FeeHandler) CreateItem(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	var req createFeeItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid fee item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.CreateFeeItemInput{
		Actor:     actor,
		Name:      req.Name,
		Amount:    req.Amount,
		Mandatory: req.Mandatory,
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid due date, expected YYYY-MM-DD")
		}
		input.DueDate = dueDate
	}

	item, err := h.uc.CreateItem(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Fee item created")
}

// ListItems handles listing fee items.
func (h *FeeHandler) ListItems(c echo.Context) error {
	limit, offset := paginationParams(c)
	items, err := h.uc.ListItems(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "Fee items listed")
}

type recordReceiptRequest struct {
	FeeItemID   string `json:"fee_item_id" validate:"required,uuid"`
	HouseholdID string `json:"household_id" validate:"required,uuid"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	PaidAt      string `json:"paid_at"`
}

// RecordReceipt handles recording a fee payment.
func (h *FeeHandler) RecordReceipt(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated actor")
	}

	var req recordReceiptRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid receipt input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feeItemID, err := uuid.Parse(req.FeeItemID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid fee item ID")
	}
	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid household ID")
	}

	input := usecase.RecordReceiptInput{
		Actor:       actor,
		FeeItemID:   feeItemID,
		HouseholdID: householdID,
		Amount:      req.Amount,
	}
	if req.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid payment time, expected RFC 3339")
		}
		input.PaidAt = paidAt
	}

	receipt, err := h.uc.RecordReceipt(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, receipt, "Receipt recorded")
}

// ListHouseholdReceipts handles listing receipts of a household.
func (h *FeeHandler) ListHouseholdReceipts(c echo.Context) error {
	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid household ID")
	}

	receipts, err := h.uc.ListHouseholdReceipts(c.Request().Context(), householdID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, receipts, "Receipts listed")
}

// ReceiptQR renders the verification QR code of a receipt as a PNG image.
func (h *FeeHandler) ReceiptQR(c echo.Context) error {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid receipt ID")
	}

	png, err := h.uc.ReceiptQR(c.Request().Context(), receiptID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
