package impl

import (
	"context"
	"testing"

	"commune/internal/domain/entity"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

func sampleNotice() usecase.DecisionNotice {
	return usecase.DecisionNotice{
		Recipient:   uuid.New(),
		Kind:        entity.NotificationJoinRequestDecided,
		Title:       "Join-household request approved",
		Message:     "The request has been approved.",
		Link:        "/join-requests/xyz",
		RequestID:   uuid.New(),
		RequestKind: "join_household",
		Outcome:     "approved",
		DeciderID:   uuid.New(),
	}
}

func TestDecisionNotifier_PersistsPushesAndPublishes(t *testing.T) {
	notificationRepo := new(mockNotificationRepository)
	push := new(mockPushService)
	publisher := new(mockEventPublisher)

	notifier := NewDecisionNotifier(notificationRepo, push, publisher, newDiscardLogger())

	ctx := context.Background()
	notice := sampleNotice()

	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == notice.Recipient && n.Kind == notice.Kind && n.Link == notice.Link
	})).Return(nil)
	push.On("SendToUser", ctx, notice.Recipient.String(), notice.Title, notice.Message, mock.Anything).Return(nil)
	publisher.On("PublishDecisionEvent", ctx, mock.Anything).Return(nil)

	notifier.NotifyDecision(ctx, notice)

	notificationRepo.AssertExpectations(t)
	push.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDecisionNotifier_SwallowsEveryFailure(t *testing.T) {
	notificationRepo := new(mockNotificationRepository)
	push := new(mockPushService)
	publisher := new(mockEventPublisher)

	notifier := NewDecisionNotifier(notificationRepo, push, publisher, newDiscardLogger())

	ctx := context.Background()

	notificationRepo.On("Create", ctx, mock.Anything).Return(errors.New("store down"))
	push.On("SendToUser", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("push down"))
	publisher.On("PublishDecisionEvent", ctx, mock.Anything).Return(errors.New("broker down"))

	// Must not panic or propagate anything.
	notifier.NotifyDecision(ctx, sampleNotice())
}

func TestDecisionNotifier_ToleratesMissingOptionalBackends(t *testing.T) {
	notificationRepo := new(mockNotificationRepository)

	notifier := NewDecisionNotifier(notificationRepo, nil, nil, newDiscardLogger())

	ctx := context.Background()

	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)

	notifier.NotifyDecision(ctx, sampleNotice())

	notificationRepo.AssertExpectations(t)
}
