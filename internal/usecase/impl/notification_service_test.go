package impl

import (
	"context"
	"testing"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListOwn(t *testing.T) {
	notificationRepo := new(mockNotificationRepository)
	service := NewNotificationService(notificationRepo, newDiscardLogger())

	ctx := context.Background()
	userID := uuid.New()
	stored := []*entity.Notification{
		{ID: uuid.New(), UserID: userID, Kind: entity.NotificationJoinRequestDecided},
	}

	notificationRepo.On("ListByUser", ctx, userID, 20, 0).Return(stored, nil)

	notifications, err := service.ListOwn(ctx, userID, 20, 0)

	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestNotificationService_MarkRead(t *testing.T) {
	notificationRepo := new(mockNotificationRepository)
	service := NewNotificationService(notificationRepo, newDiscardLogger())

	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	notificationRepo.On("MarkRead", ctx, notificationID, userID).Return(nil)

	err := service.MarkRead(ctx, userID, notificationID)

	require.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

func TestNotificationService_MarkRead_OtherAccountsNotificationLooksMissing(t *testing.T) {
	notificationRepo := new(mockNotificationRepository)
	service := NewNotificationService(notificationRepo, newDiscardLogger())

	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	notificationRepo.On("MarkRead", ctx, notificationID, userID).
		Return(repository.ErrNotificationNotFound)

	err := service.MarkRead(ctx, userID, notificationID)

	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
