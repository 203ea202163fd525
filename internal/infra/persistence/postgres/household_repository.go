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
	"gorm.io/gorm/clause"
)

// householdRepository implements the repository.HouseholdRepository interface.
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository is the constructor for householdRepository.
func NewHouseholdRepository(db *gorm.DB) repository.HouseholdRepository {
	return &householdRepository{
		db: db,
	}
}

// FindByID retrieves a single household, including its member entries.
func (repo *householdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error) {
	var householdM model.HouseholdModel

	if err := repo.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&householdM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrHouseholdNotFound
		}

		return nil, errors.Wrap(err, "failed to find household by ID")
	}

	return toHouseholdDomain(&householdM), nil
}

// FindByCode retrieves a single household by its generated code.
func (repo *householdRepository) FindByCode(ctx context.Context, code string) (*entity.Household, error) {
	var householdM model.HouseholdModel

	if err := repo.db.WithContext(ctx).
		Preload("Members").
		Where("code = ?", code).
		First(&householdM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrHouseholdNotFound
		}

		return nil, errors.Wrap(err, "failed to find household by code")
	}

	return toHouseholdDomain(&householdM), nil
}

// Create persists a new household entity, including its member entries.
func (repo *householdRepository) Create(ctx context.Context, household *entity.Household) error {
	householdM := fromHouseholdDomain(household)

	if err := repo.db.WithContext(ctx).Create(householdM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateHouseholdCode
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid head resident reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create household")
	}

	household.ID = householdM.ID
	household.CreatedAt = householdM.CreatedAt
	household.UpdatedAt = householdM.UpdatedAt

	return nil
}

// Update modifies a household's own fields (head, address).
func (repo *householdRepository) Update(ctx context.Context, household *entity.Household) error {
	result := repo.db.WithContext(ctx).
		Model(&model.HouseholdModel{ID: household.ID}).
		Select("head_id", "address").
		Updates(&model.HouseholdModel{
			HeadID:  household.HeadID,
			Address: household.Address,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update household")
	}
	if result.RowsAffected == 0 {
		return repository.ErrHouseholdNotFound
	}

	return nil
}

// AppendMember adds a member entry to the household. The insert conflicts on
// the (household, resident) primary key and does nothing, so re-appending an
// existing member is a no-op and retries converge without duplicates.
func (repo *householdRepository) AppendMember(ctx context.Context, householdID uuid.UUID, member entity.HouseholdMember) error {
	memberM := &model.HouseholdMemberModel{
		HouseholdID:  householdID,
		ResidentID:   member.ResidentID,
		Relationship: string(member.Relationship),
		JoinedAt:     member.JoinedAt,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(memberM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid household or resident reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append household member")
	}

	return nil
}

// NextCodeSequence returns the next value of the household code sequence.
func (repo *householdRepository) NextCodeSequence(ctx context.Context) (int64, error) {
	var seq int64

	if err := repo.db.WithContext(ctx).
		Raw("SELECT nextval('household_code_seq')").
		Scan(&seq).Error; err != nil {
		return 0, errors.Wrap(err, "failed to advance household code sequence")
	}

	return seq, nil
}

// List retrieves households matching the filter.
func (repo *householdRepository) List(ctx context.Context, filter repository.ListHouseholdsFilter) ([]*entity.Household, error) {
	var householdModels []*model.HouseholdModel

	query := repo.db.WithContext(ctx).
		Preload("Members").
		Order("code ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&householdModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list households")
	}

	households := make([]*entity.Household, 0, len(householdModels))
	for _, householdM := range householdModels {
		households = append(households, toHouseholdDomain(householdM))
	}

	return households, nil
}

// --- Mapper Functions ---

// toHouseholdDomain converts a GORM HouseholdModel to a domain Household entity.
func toHouseholdDomain(data *model.HouseholdModel) *entity.Household {
	if data == nil {
		return nil
	}

	members := make([]entity.HouseholdMember, 0, len(data.Members))
	for _, memberM := range data.Members {
		members = append(members, entity.HouseholdMember{
			ResidentID:   memberM.ResidentID,
			Relationship: entity.Relationship(memberM.Relationship),
			JoinedAt:     memberM.JoinedAt,
		})
	}

	return &entity.Household{
		ID:           data.ID,
		Code:         data.Code,
		HeadID:       data.HeadID,
		Address:      data.Address,
		Members:      members,
		RegisteredAt: data.RegisteredAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromHouseholdDomain converts a domain Household entity to a GORM HouseholdModel.
func fromHouseholdDomain(data *entity.Household) *model.HouseholdModel {
	if data == nil {
		return nil
	}

	members := make([]model.HouseholdMemberModel, 0, len(data.Members))
	for _, member := range data.Members {
		members = append(members, model.HouseholdMemberModel{
			HouseholdID:  data.ID,
			ResidentID:   member.ResidentID,
			Relationship: string(member.Relationship),
			JoinedAt:     member.JoinedAt,
		})
	}

	return &model.HouseholdModel{
		ID:           data.ID,
		Code:         data.Code,
		HeadID:       data.HeadID,
		Address:      data.Address,
		Members:      members,
		RegisteredAt: data.RegisteredAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
