package impl

import (
	"context"
	"log/slog"
	"time"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/policy"
	"commune/internal/domain/repository"
	"commune/internal/domain/service"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type feeService struct {
	feeRepo       repository.FeeRepository
	householdRepo repository.HouseholdRepository
	receiptCode   service.ReceiptCodeService
	logger        *slog.Logger
}

// NewFeeService creates a new fee collection service instance.
func NewFeeService(
	feeRepo repository.FeeRepository,
	householdRepo repository.HouseholdRepository,
	receiptCode service.ReceiptCodeService,
	logger *slog.Logger,
) usecase.FeeUsecase {
	return &feeService{
		feeRepo:       feeRepo,
		householdRepo: householdRepo,
		receiptCode:   receiptCode,
		logger:        logger,
	}
}

// CreateItem creates a fee item; restricted to accountants and admins.
func (s *feeService) CreateItem(ctx context.Context, input usecase.CreateFeeItemInput) (*entity.FeeItem, error) {
	if !policy.CanManageFees(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fee item name is required")
	}
	if input.Amount <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fee amount must be positive")
	}

	item := &entity.FeeItem{
		ID:        uuid.New(),
		Name:      input.Name,
		Amount:    input.Amount,
		Mandatory: input.Mandatory,
		DueDate:   input.DueDate,
	}

	if err := s.feeRepo.CreateItem(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create fee item")
	}

	return item, nil
}

// ListItems retrieves all fee items.
func (s *feeService) ListItems(ctx context.Context, limit, offset int) ([]*entity.FeeItem, error) {
	items, err := s.feeRepo.ListItems(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list fee items")
	}

	return items, nil
}

// RecordReceipt records a payment of a fee item by a household.
func (s *feeService) RecordReceipt(ctx context.Context, input usecase.RecordReceiptInput) (*entity.FeeReceipt, error) {
	if !policy.CanManageFees(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Amount <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("paid amount must be positive")
	}

	if _, err := s.feeRepo.FindItemByID(ctx, input.FeeItemID); err != nil {
		if errors.Is(err, repository.ErrFeeItemNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("fee item not found")
		}

		return nil, errors.Wrap(err, "failed to find fee item")
	}
	if _, err := s.householdRepo.FindByID(ctx, input.HouseholdID); err != nil {
		if errors.Is(err, repository.ErrHouseholdNotFound) {
			return nil, domainerrors.ErrHouseholdNotFound
		}

		return nil, errors.Wrap(err, "failed to find household")
	}

	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	receipt := &entity.FeeReceipt{
		ID:          uuid.New(),
		FeeItemID:   input.FeeItemID,
		HouseholdID: input.HouseholdID,
		Amount:      input.Amount,
		CollectorID: input.Actor.UserID,
		PaidAt:      paidAt,
	}

	if err := s.feeRepo.CreateReceipt(ctx, receipt); err != nil {
		return nil, errors.Wrap(err, "failed to create fee receipt")
	}

	return receipt, nil
}

// ListHouseholdReceipts retrieves receipts of a household.
func (s *feeService) ListHouseholdReceipts(ctx context.Context, householdID uuid.UUID) ([]*entity.FeeReceipt, error) {
	receipts, err := s.feeRepo.ListReceiptsByHousehold(ctx, householdID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list fee receipts")
	}

	return receipts, nil
}

// ReceiptQR renders the verification QR code (PNG) of a receipt.
func (s *feeService) ReceiptQR(ctx context.Context, receiptID uuid.UUID) ([]byte, error) {
	receipt, err := s.feeRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, repository.ErrFeeReceiptNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("fee receipt not found")
		}

		return nil, errors.Wrap(err, "failed to find fee receipt")
	}

	png, err := s.receiptCode.GenerateReceiptQR(receipt.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate receipt QR code")
	}

	return png, nil
}
