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

// residentRepository implements the repository.ResidentRepository interface.
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository is the constructor for residentRepository.
func NewResidentRepository(db *gorm.DB) repository.ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// FindByID retrieves a single resident by their unique ID.
func (repo *residentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error) {
	var residentM model.ResidentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&residentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResidentNotFound
		}

		return nil, errors.Wrap(err, "failed to find resident by ID")
	}

	return toResidentDomain(&residentM), nil
}

// FindByIdentityNumber retrieves a single resident by their national identity number.
func (repo *residentRepository) FindByIdentityNumber(ctx context.Context, identityNumber string) (*entity.Resident, error) {
	var residentM model.ResidentModel

	if err := repo.db.WithContext(ctx).
		Where("identity_number = ?", identityNumber).
		First(&residentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResidentNotFound
		}

		return nil, errors.Wrap(err, "failed to find resident by identity number")
	}

	return toResidentDomain(&residentM), nil
}

// Create persists a new resident entity to the storage.
func (repo *residentRepository) Create(ctx context.Context, resident *entity.Resident) error {
	residentM := fromResidentDomain(resident)

	if err := repo.db.WithContext(ctx).Create(residentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateIdentityNumber
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create resident")
	}

	resident.ID = residentM.ID
	resident.CreatedAt = residentM.CreatedAt
	resident.UpdatedAt = residentM.UpdatedAt

	return nil
}

// Update modifies an existing resident entity in the storage. The identity
// number is deliberately excluded: it is immutable once registered.
func (repo *residentRepository) Update(ctx context.Context, resident *entity.Resident) error {
	residentM := fromResidentDomain(resident)

	result := repo.db.WithContext(ctx).
		Model(&model.ResidentModel{ID: resident.ID}).
		Select("full_name", "birth_date", "sex", "origin", "ethnicity",
			"occupation", "phone", "household_id", "relationship", "status").
		Updates(residentM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update resident")
	}
	if result.RowsAffected == 0 {
		return repository.ErrResidentNotFound
	}

	return nil
}

// List retrieves residents matching the filter.
func (repo *residentRepository) List(ctx context.Context, filter repository.ListResidentsFilter) ([]*entity.Resident, error) {
	var residentModels []*model.ResidentModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if filter.HouseholdID != nil {
		query = query.Where("household_id = ?", *filter.HouseholdID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&residentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list residents")
	}

	residents := make([]*entity.Resident, 0, len(residentModels))
	for _, residentM := range residentModels {
		residents = append(residents, toResidentDomain(residentM))
	}

	return residents, nil
}

// --- Mapper Functions ---

// toResidentDomain converts a GORM ResidentModel to a domain Resident entity.
func toResidentDomain(data *model.ResidentModel) *entity.Resident {
	if data == nil {
		return nil
	}

	return &entity.Resident{
		ID:             data.ID,
		IdentityNumber: data.IdentityNumber,
		FullName:       data.FullName,
		BirthDate:      data.BirthDate,
		Sex:            entity.Sex(data.Sex),
		Origin:         data.Origin,
		Ethnicity:      data.Ethnicity,
		Occupation:     data.Occupation,
		Phone:          data.Phone,
		HouseholdID:    data.HouseholdID,
		Relationship:   entity.Relationship(data.Relationship),
		Status:         entity.ResidentStatus(data.Status),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromResidentDomain converts a domain Resident entity to a GORM ResidentModel.
func fromResidentDomain(data *entity.Resident) *model.ResidentModel {
	if data == nil {
		return nil
	}

	return &model.ResidentModel{
		ID:             data.ID,
		IdentityNumber: data.IdentityNumber,
		FullName:       data.FullName,
		BirthDate:      data.BirthDate,
		Sex:            string(data.Sex),
		Origin:         data.Origin,
		Ethnicity:      data.Ethnicity,
		Occupation:     data.Occupation,
		Phone:          data.Phone,
		HouseholdID:    data.HouseholdID,
		Relationship:   string(data.Relationship),
		Status:         string(data.Status),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
