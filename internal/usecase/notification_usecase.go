package usecase

import (
	"context"

	"commune/internal/domain/entity"

	"github.com/google/uuid"
)

// DecisionNotice describes a notification owed to the submitter of a
// decided request. Emission is fire-and-forget: a failed notification is
// logged and never fails the decision that produced it.
type DecisionNotice struct {
	Recipient uuid.UUID
	Kind      entity.NotificationKind
	Title     string
	Message   string
	Link      string

	// Event fields for the async publisher.
	RequestID   uuid.UUID
	RequestKind string
	Outcome     string
	DeciderID   uuid.UUID
}

// DecisionNotifier is the boundary to the notification fan-out collaborator.
type DecisionNotifier interface {
	// NotifyDecision enqueues exactly one notification for the notice and
	// publishes the matching decision event. Best-effort only.
	NotifyDecision(ctx context.Context, notice DecisionNotice)
}

// NotificationUsecase defines the read-model operations on notifications.
type NotificationUsecase interface {
	// ListOwn retrieves an account's notifications, newest first.
	ListOwn(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// MarkRead flags one of the account's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}
