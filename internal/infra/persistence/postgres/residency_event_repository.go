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

// residencyEventRepository implements the repository.ResidencyEventRepository interface.
type residencyEventRepository struct {
	db *gorm.DB
}

// NewResidencyEventRepository is the constructor for residencyEventRepository.
func NewResidencyEventRepository(db *gorm.DB) repository.ResidencyEventRepository {
	return &residencyEventRepository{
		db: db,
	}
}

// Create persists a new residency event in the pending state.
func (repo *residencyEventRepository) Create(ctx context.Context, event *entity.ResidencyEvent) error {
	eventM := fromResidencyEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid resident or submitter reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create residency event")
	}

	event.ID = eventM.ID
	event.SubmittedAt = eventM.SubmittedAt
	event.UpdatedAt = eventM.UpdatedAt

	return nil
}

// FindByID retrieves a single residency event by its unique ID.
func (repo *residencyEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResidencyEvent, error) {
	var eventM model.ResidencyEventModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&eventM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResidencyEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find residency event by ID")
	}

	return toResidencyEventDomain(&eventM), nil
}

// MarkProcessed transitions a pending event to processed with an explicit
// outcome. Same conditional predicate as the join-request decisions: of any
// number of concurrent deciders exactly one wins.
func (repo *residencyEventRepository) MarkProcessed(ctx context.Context, id uuid.UUID, outcome entity.ResidencyEventOutcome, rejectionReason string, deciderID uuid.UUID, decidedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ResidencyEventModel{}).
		Where("id = ? AND state = ?", id, string(entity.ResidencyEventPending)).
		Updates(map[string]any{
			"state":            string(entity.ResidencyEventProcessed),
			"outcome":          string(outcome),
			"rejection_reason": rejectionReason,
			"decider_id":       deciderID,
			"decided_at":       decidedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to process residency event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRequestNotPending
	}

	return nil
}

// List retrieves residency events matching the filter, newest first.
func (repo *residencyEventRepository) List(ctx context.Context, filter repository.ListResidencyEventsFilter) ([]*entity.ResidencyEvent, error) {
	var eventModels []*model.ResidencyEventModel

	query := repo.db.WithContext(ctx).Order("submitted_at DESC")
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.State != "" {
		query = query.Where("state = ?", string(filter.State))
	}
	if filter.SubmitterID != nil {
		query = query.Where("submitter_id = ?", *filter.SubmitterID)
	}
	if filter.ResidentID != nil {
		query = query.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list residency events")
	}

	events := make([]*entity.ResidencyEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toResidencyEventDomain(eventM))
	}

	return events, nil
}

// --- Mapper Functions ---

// toResidencyEventDomain converts a GORM ResidencyEventModel to a domain ResidencyEvent entity.
func toResidencyEventDomain(data *model.ResidencyEventModel) *entity.ResidencyEvent {
	if data == nil {
		return nil
	}

	return &entity.ResidencyEvent{
		ID:              data.ID,
		Kind:            entity.ResidencyEventKind(data.Kind),
		ResidentID:      data.ResidentID,
		Location:        data.Location,
		StartDate:       data.StartDate,
		EndDate:         data.EndDate,
		Reason:          data.Reason,
		Note:            data.Note,
		SubmitterID:     data.SubmitterID,
		State:           entity.ResidencyEventState(data.State),
		Outcome:         entity.ResidencyEventOutcome(data.Outcome),
		RejectionReason: data.RejectionReason,
		DeciderID:       data.DeciderID,
		DecidedAt:       data.DecidedAt,
		SubmittedAt:     data.SubmittedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromResidencyEventDomain converts a domain ResidencyEvent entity to a GORM ResidencyEventModel.
func fromResidencyEventDomain(data *entity.ResidencyEvent) *model.ResidencyEventModel {
	if data == nil {
		return nil
	}

	return &model.ResidencyEventModel{
		ID:              data.ID,
		Kind:            string(data.Kind),
		ResidentID:      data.ResidentID,
		Location:        data.Location,
		StartDate:       data.StartDate,
		EndDate:         data.EndDate,
		Reason:          data.Reason,
		Note:            data.Note,
		SubmitterID:     data.SubmitterID,
		State:           string(data.State),
		Outcome:         string(data.Outcome),
		RejectionReason: data.RejectionReason,
		DeciderID:       data.DeciderID,
		DecidedAt:       data.DecidedAt,
		SubmittedAt:     data.SubmittedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
