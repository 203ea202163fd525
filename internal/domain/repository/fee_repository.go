// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for fee persistence.
var (
	// ErrFeeItemNotFound is returned when a fee item is not found.
	ErrFeeItemNotFound = errors.New("fee item not found")
	// ErrFeeReceiptNotFound is returned when a fee receipt is not found.
	ErrFeeReceiptNotFound = errors.New("fee receipt not found")
)

// FeeRepository defines the operations for fee item and receipt persistence.
type FeeRepository interface {
	// CreateItem persists a new fee item.
	CreateItem(ctx context.Context, item *entity.FeeItem) error

	// FindItemByID retrieves a fee item by its unique ID.
	FindItemByID(ctx context.Context, id uuid.UUID) (*entity.FeeItem, error)

	// UpdateItem modifies an existing fee item.
	UpdateItem(ctx context.Context, item *entity.FeeItem) error

	// ListItems retrieves all fee items, newest first.
	ListItems(ctx context.Context, limit, offset int) ([]*entity.FeeItem, error)

	// CreateReceipt persists a payment receipt.
	CreateReceipt(ctx context.Context, receipt *entity.FeeReceipt) error

	// FindReceiptByID retrieves a receipt by its unique ID.
	FindReceiptByID(ctx context.Context, id uuid.UUID) (*entity.FeeReceipt, error)

	// ListReceiptsByHousehold retrieves receipts recorded for a household.
	ListReceiptsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.FeeReceipt, error)
}
