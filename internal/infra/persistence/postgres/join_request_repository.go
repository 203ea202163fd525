package postgres

import (
	"context"
	"time"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// joinRequestRepository implements the repository.JoinRequestRepository interface.
type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository is the constructor for joinRequestRepository.
func NewJoinRequestRepository(db *gorm.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{
		db: db,
	}
}

// Create persists a new join request in the pending state.
func (repo *joinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	requestM := fromJoinRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid household or submitter reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create join request")
	}

	request.ID = requestM.ID
	request.SubmittedAt = requestM.SubmittedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a single join request by its unique ID.
func (repo *joinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	var requestM model.JoinRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJoinRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find join request by ID")
	}

	return toJoinRequestDomain(&requestM), nil
}

// MarkApproved transitions a pending request to approved. The UPDATE carries
// a `state = pending` predicate: with concurrent deciders exactly one
// observes an affected row, every other caller gets ErrRequestNotPending.
func (repo *joinRequestRepository) MarkApproved(ctx context.Context, id uuid.UUID, deciderID, residentID uuid.UUID, decidedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.JoinRequestModel{}).
		Where("id = ? AND state = ?", id, string(entity.JoinRequestPending)).
		Updates(map[string]any{
			"state":       string(entity.JoinRequestApproved),
			"resident_id": residentID,
			"decider_id":  deciderID,
			"decided_at":  decidedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to approve join request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRequestNotPending
	}

	return nil
}

// MarkRejected transitions a pending request to rejected, under the same
// conditional predicate as MarkApproved.
func (repo *joinRequestRepository) MarkRejected(ctx context.Context, id uuid.UUID, deciderID uuid.UUID, note string, decidedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.JoinRequestModel{}).
		Where("id = ? AND state = ?", id, string(entity.JoinRequestPending)).
		Updates(map[string]any{
			"state":          string(entity.JoinRequestRejected),
			"decider_id":     deciderID,
			"decided_at":     decidedAt,
			"rejection_note": note,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to reject join request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRequestNotPending
	}

	return nil
}

// List retrieves join requests matching the filter, newest first.
func (repo *joinRequestRepository) List(ctx context.Context, filter repository.ListJoinRequestsFilter) ([]*entity.JoinRequest, error) {
	var requestModels []*model.JoinRequestModel

	query := repo.db.WithContext(ctx).Order("submitted_at DESC")
	if filter.State != "" {
		query = query.Where("state = ?", string(filter.State))
	}
	if filter.SubmitterID != nil {
		query = query.Where("submitter_id = ?", *filter.SubmitterID)
	}
	if filter.HouseholdID != nil {
		query = query.Where("household_id = ?", *filter.HouseholdID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list join requests")
	}

	requests := make([]*entity.JoinRequest, 0, len(requestModels))
	for _, requestM := range requestModels {
		requests = append(requests, toJoinRequestDomain(requestM))
	}

	return requests, nil
}

// --- Mapper Functions ---

// toJoinRequestDomain converts a GORM JoinRequestModel to a domain JoinRequest entity.
func toJoinRequestDomain(data *model.JoinRequestModel) *entity.JoinRequest {
	if data == nil {
		return nil
	}

	return &entity.JoinRequest{
		ID:          data.ID,
		HouseholdID: data.HouseholdID,
		SubmitterID: data.SubmitterID,
		Applicant: entity.ApplicantSnapshot{
			IdentityNumber: data.ApplicantIdentityNumber,
			FullName:       data.ApplicantFullName,
			BirthDate:      data.ApplicantBirthDate,
			Sex:            entity.Sex(data.ApplicantSex),
			Origin:         data.ApplicantOrigin,
			Ethnicity:      data.ApplicantEthnicity,
			Occupation:     data.ApplicantOccupation,
			Phone:          data.ApplicantPhone,
		},
		Relationship:  entity.Relationship(data.Relationship),
		Reason:        data.Reason,
		State:         entity.JoinRequestState(data.State),
		ResidentID:    data.ResidentID,
		DeciderID:     data.DeciderID,
		DecidedAt:     data.DecidedAt,
		RejectionNote: data.RejectionNote,
		SubmittedAt:   data.SubmittedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromJoinRequestDomain converts a domain JoinRequest entity to a GORM JoinRequestModel.
func fromJoinRequestDomain(data *entity.JoinRequest) *model.JoinRequestModel {
	if data == nil {
		return nil
	}

	return &model.JoinRequestModel{
		ID:                      data.ID,
		HouseholdID:             data.HouseholdID,
		SubmitterID:             data.SubmitterID,
		ApplicantIdentityNumber: data.Applicant.IdentityNumber,
		ApplicantFullName:       data.Applicant.FullName,
		ApplicantBirthDate:      data.Applicant.BirthDate,
		ApplicantSex:            string(data.Applicant.Sex),
		ApplicantOrigin:         data.Applicant.Origin,
		ApplicantEthnicity:      data.Applicant.Ethnicity,
		ApplicantOccupation:     data.Applicant.Occupation,
		ApplicantPhone:          data.Applicant.Phone,
		Relationship:            string(data.Relationship),
		Reason:                  data.Reason,
		State:                   string(data.State),
		ResidentID:              data.ResidentID,
		DeciderID:               data.DeciderID,
		DecidedAt:               data.DecidedAt,
		RejectionNote:           data.RejectionNote,
		SubmittedAt:             data.SubmittedAt,
		UpdatedAt:               data.UpdatedAt,
	}
}
