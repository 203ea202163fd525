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

type feedbackService struct {
	feedbackRepo     repository.FeedbackRepository
	notificationRepo repository.NotificationRepository
	push             service.PushService
	logger           *slog.Logger
}

// NewFeedbackService creates a new citizen feedback service instance.
// push may be nil when no push backend is configured.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	notificationRepo repository.NotificationRepository,
	push service.PushService,
	logger *slog.Logger,
) usecase.FeedbackUsecase {
	return &feedbackService{
		feedbackRepo:     feedbackRepo,
		notificationRepo: notificationRepo,
		push:             push,
		logger:           logger,
	}
}

// Submit records a new feedback entry from the calling actor.
func (s *feedbackService) Submit(ctx context.Context, input usecase.SubmitFeedbackInput) (*entity.Feedback, error) {
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("feedback title is required")
	}
	if input.Content == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("feedback content is required")
	}

	feedback := &entity.Feedback{
		ID:       uuid.New(),
		AuthorID: input.Actor.UserID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Status:   entity.FeedbackOpen,
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, errors.Wrap(err, "failed to create feedback")
	}

	return feedback, nil
}

// Respond records the administration's reply and notifies the author.
func (s *feedbackService) Respond(ctx context.Context, input usecase.RespondFeedbackInput) (*entity.Feedback, error) {
	if !policy.CanRespondFeedback(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Response == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("response text is required")
	}

	feedback, err := s.feedbackRepo.FindByID(ctx, input.FeedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("feedback not found")
		}

		return nil, errors.Wrap(err, "failed to find feedback")
	}

	now := time.Now()
	responderID := input.Actor.UserID
	feedback.Status = entity.FeedbackResponded
	feedback.Response = input.Response
	feedback.ResponderID = &responderID
	feedback.RespondedAt = &now

	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, errors.Wrap(err, "failed to update feedback")
	}

	s.notifyAuthor(ctx, feedback)

	return feedback, nil
}

// notifyAuthor alerts the feedback author that a response arrived.
// Best-effort: failures are logged and never fail the response itself.
func (s *feedbackService) notifyAuthor(ctx context.Context, feedback *entity.Feedback) {
	notification := &entity.Notification{
		ID:      uuid.New(),
		UserID:  feedback.AuthorID,
		Kind:    entity.NotificationFeedbackResponded,
		Title:   "Your feedback received a response",
		Message: "The administration responded to: " + feedback.Title,
		Link:    "/feedback/" + feedback.ID.String(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to persist feedback notification",
			slog.String("feedback_id", feedback.ID.String()),
			slog.Any("error", err))
	}

	if s.push == nil {
		return
	}
	if err := s.push.SendToUser(ctx, feedback.AuthorID.String(), notification.Title, notification.Message, map[string]string{
		"kind":        string(notification.Kind),
		"feedback_id": feedback.ID.String(),
	}); err != nil {
		s.logger.Error("failed to push feedback notification",
			slog.String("feedback_id", feedback.ID.String()),
			slog.Any("error", err))
	}
}

// List retrieves feedback entries visible to the actor.
func (s *feedbackService) List(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.Feedback, error) {
	filter := repository.ListFeedbackFilter{Limit: limit, Offset: offset}
	if !policy.CanRespondFeedback(actor.Roles) {
		authorID := actor.UserID
		filter.AuthorID = &authorID
	}

	feedbacks, err := s.feedbackRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}

	return feedbacks, nil
}
