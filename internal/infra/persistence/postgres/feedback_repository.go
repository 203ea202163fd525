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

// feedbackRepository implements the repository.FeedbackRepository interface.
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository is the constructor for feedbackRepository.
func NewFeedbackRepository(db *gorm.DB) repository.FeedbackRepository {
	return &feedbackRepository{
		db: db,
	}
}

// Create persists a new feedback entry.
func (repo *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	feedbackM := fromFeedbackDomain(feedback)

	if err := repo.db.WithContext(ctx).Create(feedbackM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid author reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create feedback")
	}

	feedback.ID = feedbackM.ID
	feedback.CreatedAt = feedbackM.CreatedAt
	feedback.UpdatedAt = feedbackM.UpdatedAt

	return nil
}

// FindByID retrieves a feedback entry by its unique ID.
func (repo *feedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error) {
	var feedbackM model.FeedbackModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&feedbackM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFeedbackNotFound
		}

		return nil, errors.Wrap(err, "failed to find feedback by ID")
	}

	return toFeedbackDomain(&feedbackM), nil
}

// Update modifies an existing feedback entry (status, response).
func (repo *feedbackRepository) Update(ctx context.Context, feedback *entity.Feedback) error {
	result := repo.db.WithContext(ctx).
		Model(&model.FeedbackModel{ID: feedback.ID}).
		Select("status", "response", "responder_id", "responded_at").
		Updates(fromFeedbackDomain(feedback))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update feedback")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFeedbackNotFound
	}

	return nil
}

// List retrieves feedback entries matching the filter, newest first.
func (repo *feedbackRepository) List(ctx context.Context, filter repository.ListFeedbackFilter) ([]*entity.Feedback, error) {
	var feedbackModels []*model.FeedbackModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
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

	if err := query.Find(&feedbackModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}

	feedbacks := make([]*entity.Feedback, 0, len(feedbackModels))
	for _, feedbackM := range feedbackModels {
		feedbacks = append(feedbacks, toFeedbackDomain(feedbackM))
	}

	return feedbacks, nil
}

// --- Mapper Functions ---

func toFeedbackDomain(data *model.FeedbackModel) *entity.Feedback {
	if data == nil {
		return nil
	}

	return &entity.Feedback{
		ID:          data.ID,
		AuthorID:    data.AuthorID,
		Title:       data.Title,
		Content:     data.Content,
		Category:    data.Category,
		Status:      entity.FeedbackStatus(data.Status),
		Response:    data.Response,
		ResponderID: data.ResponderID,
		RespondedAt: data.RespondedAt,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromFeedbackDomain(data *entity.Feedback) *model.FeedbackModel {
	if data == nil {
		return nil
	}

	return &model.FeedbackModel{
		ID:          data.ID,
		AuthorID:    data.AuthorID,
		Title:       data.Title,
		Content:     data.Content,
		Category:    data.Category,
		Status:      string(data.Status),
		Response:    data.Response,
		ResponderID: data.ResponderID,
		RespondedAt: data.RespondedAt,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
