// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification addressed to a single account.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser retrieves notifications for an account, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// MarkRead flags a notification as read by its recipient.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}
