package usecase

import (
	"context"
	"time"

	"commune/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateFeeItemInput defines the data required to create a fee item.
type CreateFeeItemInput struct {
	Actor     entity.Actor
	Name      string
	Amount    int64
	Mandatory bool
	DueDate   time.Time
}

// RecordReceiptInput defines the data required to record a fee payment.
type RecordReceiptInput struct {
	Actor       entity.Actor
	FeeItemID   uuid.UUID
	HouseholdID uuid.UUID
	Amount      int64
	PaidAt      time.Time
}

// FeeUsecase defines the interface for fee collection operations.
type FeeUsecase interface {
	// CreateItem creates a fee item; restricted to accountants and admins.
	CreateItem(ctx context.Context, input CreateFeeItemInput) (*entity.FeeItem, error)

	// ListItems retrieves all fee items.
	ListItems(ctx context.Context, limit, offset int) ([]*entity.FeeItem, error)

	// RecordReceipt records a payment of a fee item by a household.
	RecordReceipt(ctx context.Context, input RecordReceiptInput) (*entity.FeeReceipt, error)

	// ListHouseholdReceipts retrieves receipts of a household.
	ListHouseholdReceipts(ctx context.Context, householdID uuid.UUID) ([]*entity.FeeReceipt, error)

	// ReceiptQR renders the verification QR code (PNG) of a receipt.
	ReceiptQR(ctx context.Context, receiptID uuid.UUID) ([]byte, error)
}
