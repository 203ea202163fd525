package impl

import (
	"context"
	"log/slog"
	"time"

	"commune/internal/domain/entity"
	"commune/internal/domain/repository"
	"commune/internal/domain/service"
	"commune/internal/usecase"

	"github.com/google/uuid"
)

// decisionNotifier is the concrete notification fan-out: it writes the
// notification row, pushes to the recipient's devices and publishes the
// decision event. Every step is best-effort; a decision never fails because
// its notification could not be delivered.
type decisionNotifier struct {
	notificationRepo repository.NotificationRepository
	push             service.PushService   // nil when push is not configured
	publisher        service.EventPublisher // nil when pub/sub is not configured
	logger           *slog.Logger
}

// NewDecisionNotifier creates the notification fan-out used by the request
// workflows. The push service and event publisher are optional.
func NewDecisionNotifier(
	notificationRepo repository.NotificationRepository,
	push service.PushService,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.DecisionNotifier {
	return &decisionNotifier{
		notificationRepo: notificationRepo,
		push:             push,
		publisher:        publisher,
		logger:           logger,
	}
}

// NotifyDecision enqueues exactly one notification for the notice and
// publishes the matching decision event.
func (n *decisionNotifier) NotifyDecision(ctx context.Context, notice usecase.DecisionNotice) {
	notification := &entity.Notification{
		ID:        uuid.New(),
		UserID:    notice.Recipient,
		Kind:      notice.Kind,
		Title:     notice.Title,
		Message:   notice.Message,
		Link:      notice.Link,
		CreatedAt: time.Now(),
	}
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		n.logger.Error("Failed to persist decision notification",
			slog.String("request_id", notice.RequestID.String()),
			slog.String("recipient", notice.Recipient.String()),
			slog.Any("error", err),
		)
	}

	if n.push != nil {
		data := map[string]string{
			"kind": string(notice.Kind),
			"link": notice.Link,
		}
		if err := n.push.SendToUser(ctx, notice.Recipient.String(), notice.Title, notice.Message, data); err != nil {
			n.logger.Warn("Failed to push decision notification",
				slog.String("request_id", notice.RequestID.String()),
				slog.String("recipient", notice.Recipient.String()),
				slog.Any("error", err),
			)
		}
	}

	if n.publisher != nil {
		event := &service.DecisionEvent{
			RequestID:   notice.RequestID.String(),
			RequestKind: notice.RequestKind,
			Outcome:     notice.Outcome,
			SubmitterID: notice.Recipient.String(),
			DeciderID:   notice.DeciderID.String(),
			DecidedAt:   time.Now().Format(time.RFC3339),
		}
		if err := n.publisher.PublishDecisionEvent(ctx, event); err != nil {
			n.logger.Warn("Failed to publish decision event",
				slog.String("request_id", notice.RequestID.String()),
				slog.Any("error", err),
			)
		}
	}
}
