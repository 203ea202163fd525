package postgres

import (
	"context"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// feeRepository implements the repository.FeeRepository interface.
type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository is the constructor for feeRepository.
func NewFeeRepository(db *gorm.DB) repository.FeeRepository {
	return &feeRepository{
		db: db,
	}
}

// CreateItem persists a new fee item.
func (repo *feeRepository) CreateItem(ctx context.Context, item *entity.FeeItem) error {
	itemM := fromFeeItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create fee item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindItemByID retrieves a fee item by its unique ID.
func (repo *feeRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.FeeItem, error) {
	var itemM model.FeeItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFeeItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find fee item by ID")
	}

	return toFeeItemDomain(&itemM), nil
}

// UpdateItem modifies an existing fee item.
func (repo *feeRepository) UpdateItem(ctx context.Context, item *entity.FeeItem) error {
	result := repo.db.WithContext(ctx).
		Model(&model.FeeItemModel{ID: item.ID}).
		Select("name", "amount", "mandatory", "due_date").
		Updates(fromFeeItemDomain(item))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update fee item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFeeItemNotFound
	}

	return nil
}

// ListItems retrieves all fee items, newest first.
func (repo *feeRepository) ListItems(ctx context.Context, limit, offset int) ([]*entity.FeeItem, error) {
	var itemModels []*model.FeeItemModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list fee items")
	}

	items := make([]*entity.FeeItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toFeeItemDomain(itemM))
	}

	return items, nil
}

// CreateReceipt persists a payment receipt.
func (repo *feeRepository) CreateReceipt(ctx context.Context, receipt *entity.FeeReceipt) error {
	receiptM := fromFeeReceiptDomain(receipt)

	if err := repo.db.WithContext(ctx).Create(receiptM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid fee item or household reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create fee receipt")
	}

	receipt.ID = receiptM.ID
	receipt.CreatedAt = receiptM.CreatedAt

	return nil
}

// FindReceiptByID retrieves a receipt by its unique ID.
func (repo *feeRepository) FindReceiptByID(ctx context.Context, id uuid.UUID) (*entity.FeeReceipt, error) {
	var receiptM model.FeeReceiptModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&receiptM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFeeReceiptNotFound
		}

		return nil, errors.Wrap(err, "failed to find fee receipt by ID")
	}

	return toFeeReceiptDomain(&receiptM), nil
}

// ListReceiptsByHousehold retrieves receipts recorded for a household.
func (repo *feeRepository) ListReceiptsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.FeeReceipt, error) {
	var receiptModels []*model.FeeReceiptModel

	if err := repo.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("paid_at DESC").
		Find(&receiptModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list fee receipts by household")
	}

	receipts := make([]*entity.FeeReceipt, 0, len(receiptModels))
	for _, receiptM := range receiptModels {
		receipts = append(receipts, toFeeReceiptDomain(receiptM))
	}

	return receipts, nil
}

// --- Mapper Functions ---

func toFeeItemDomain(data *model.FeeItemModel) *entity.FeeItem {
	if data == nil {
		return nil
	}

	return &entity.FeeItem{
		ID:        data.ID,
		Name:      data.Name,
		Amount:    data.Amount,
		Mandatory: data.Mandatory,
		DueDate:   data.DueDate,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromFeeItemDomain(data *entity.FeeItem) *model.FeeItemModel {
	if data == nil {
		return nil
	}

	return &model.FeeItemModel{
		ID:        data.ID,
		Name:      data.Name,
		Amount:    data.Amount,
		Mandatory: data.Mandatory,
		DueDate:   data.DueDate,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toFeeReceiptDomain(data *model.FeeReceiptModel) *entity.FeeReceipt {
	if data == nil {
		return nil
	}

	return &entity.FeeReceipt{
		ID:          data.ID,
		FeeItemID:   data.FeeItemID,
		HouseholdID: data.HouseholdID,
		Amount:      data.Amount,
		CollectorID: data.CollectorID,
		PaidAt:      data.PaidAt,
		CreatedAt:   data.CreatedAt,
	}
}

func fromFeeReceiptDomain(data *entity.FeeReceipt) *model.FeeReceiptModel {
	if data == nil {
		return nil
	}

	return &model.FeeReceiptModel{
		ID:          data.ID,
		FeeItemID:   data.FeeItemID,
		HouseholdID: data.HouseholdID,
		Amount:      data.Amount,
		CollectorID: data.CollectorID,
		PaidAt:      data.PaidAt,
		CreatedAt:   data.CreatedAt,
	}
}
