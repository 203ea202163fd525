package impl

import (
	"context"
	"log/slog"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NewNotificationService creates a new notification read-model service instance.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListOwn retrieves an account's notifications, newest first.
func (s *notificationService) ListOwn(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead flags one of the account's notifications as read. The recipient
// predicate is part of the update, so an account can never flag another
// account's notification.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotFound.WithDetails("notification not found")
		}

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}
