package impl

import (
	"context"
	"testing"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type feedbackFixtures struct {
	service          usecase.FeedbackUsecase
	feedbackRepo     *mockFeedbackRepository
	notificationRepo *mockNotificationRepository
	push             *mockPushService
}

func createTestFeedbackService() feedbackFixtures {
	feedbackRepo := new(mockFeedbackRepository)
	notificationRepo := new(mockNotificationRepository)
	push := new(mockPushService)

	service := NewFeedbackService(feedbackRepo, notificationRepo, push, newDiscardLogger())

	return feedbackFixtures{
		service:          service,
		feedbackRepo:     feedbackRepo,
		notificationRepo: notificationRepo,
		push:             push,
	}
}

func TestFeedbackService_Submit_Success(t *testing.T) {
	fx := createTestFeedbackService()

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleResident}}

	fx.feedbackRepo.On("Create", ctx, mock.MatchedBy(func(f *entity.Feedback) bool {
		return f.AuthorID == actor.UserID && f.Status == entity.FeedbackOpen
	})).Return(nil)

	feedback, err := fx.service.Submit(ctx, usecase.SubmitFeedbackInput{
		Actor:    actor,
		Title:    "Broken streetlight",
		Content:  "The light at alley 5 has been out for a week.",
		Category: "infrastructure",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackOpen, feedback.Status)
}

func TestFeedbackService_Submit_RequiresContent(t *testing.T) {
	fx := createTestFeedbackService()

	_, err := fx.service.Submit(context.Background(), usecase.SubmitFeedbackInput{
		Actor: entity.Actor{UserID: uuid.New()},
		Title: "Broken streetlight",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestFeedbackService_Respond_Success(t *testing.T) {
	fx := createTestFeedbackService()

	ctx := context.Background()
	actor := supervisorActor()
	feedback := &entity.Feedback{
		ID:       uuid.New(),
		AuthorID: uuid.New(),
		Title:    "Broken streetlight",
		Status:   entity.FeedbackOpen,
	}

	fx.feedbackRepo.On("FindByID", ctx, feedback.ID).Return(feedback, nil)
	fx.feedbackRepo.On("Update", ctx, mock.MatchedBy(func(f *entity.Feedback) bool {
		return f.Status == entity.FeedbackResponded &&
			f.Response == "Repair scheduled for Monday." &&
			f.ResponderID != nil && *f.ResponderID == actor.UserID
	})).Return(nil)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == feedback.AuthorID && n.Kind == entity.NotificationFeedbackResponded
	})).Return(nil)
	fx.push.On("SendToUser", ctx, feedback.AuthorID.String(), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	responded, err := fx.service.Respond(ctx, usecase.RespondFeedbackInput{
		Actor:      actor,
		FeedbackID: feedback.ID,
		Response:   "Repair scheduled for Monday.",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackResponded, responded.Status)
	fx.notificationRepo.AssertExpectations(t)
}

func TestFeedbackService_Respond_NotificationFailureIsSwallowed(t *testing.T) {
	fx := createTestFeedbackService()

	ctx := context.Background()
	actor := supervisorActor()
	feedback := &entity.Feedback{
		ID:       uuid.New(),
		AuthorID: uuid.New(),
		Title:    "Broken streetlight",
		Status:   entity.FeedbackOpen,
	}

	fx.feedbackRepo.On("FindByID", ctx, feedback.ID).Return(feedback, nil)
	fx.feedbackRepo.On("Update", ctx, mock.Anything).Return(nil)
	fx.notificationRepo.On("Create", ctx, mock.Anything).Return(errors.New("notification store down"))
	fx.push.On("SendToUser", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("push backend down"))

	responded, err := fx.service.Respond(ctx, usecase.RespondFeedbackInput{
		Actor:      actor,
		FeedbackID: feedback.ID,
		Response:   "Repair scheduled for Monday.",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackResponded, responded.Status)
}

func TestFeedbackService_Respond_ForbiddenForResident(t *testing.T) {
	fx := createTestFeedbackService()

	_, err := fx.service.Respond(context.Background(), usecase.RespondFeedbackInput{
		Actor:      entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleResident}},
		FeedbackID: uuid.New(),
		Response:   "noted",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestFeedbackService_List_ScopedToAuthorForNonResponders(t *testing.T) {
	fx := createTestFeedbackService()

	ctx := context.Background()
	actor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleResident}}

	fx.feedbackRepo.On("List", ctx, mock.MatchedBy(func(f repository.ListFeedbackFilter) bool {
		return f.AuthorID != nil && *f.AuthorID == actor.UserID
	})).Return([]*entity.Feedback{}, nil)

	_, err := fx.service.List(ctx, actor, 20, 0)

	require.NoError(t, err)
	fx.feedbackRepo.AssertExpectations(t)
}

func TestFeedbackService_List_UnscopedForSupervisors(t *testing.T) {
	fx := createTestFeedbackService()

	ctx := context.Background()

	fx.feedbackRepo.On("List", ctx, mock.MatchedBy(func(f repository.ListFeedbackFilter) bool {
		return f.AuthorID == nil
	})).Return([]*entity.Feedback{}, nil)

	_, err := fx.service.List(ctx, supervisorActor(), 20, 0)

	require.NoError(t, err)
}
