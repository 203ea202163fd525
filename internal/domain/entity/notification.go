// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind tags a notification with the event that produced it.
type NotificationKind string

const (
	NotificationJoinRequestDecided    NotificationKind = "join_request_decided"
	NotificationResidencyEventDecided NotificationKind = "residency_event_decided"
	NotificationFeedbackResponded     NotificationKind = "feedback_responded"
)

// Notification is a message addressed to a single account. Delivery to the
// notification list is at-least-once; push delivery on top of it is
// best-effort only.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"` // The recipient account.
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link"` // Optional deep link to the related detail view.
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	ReadAt    *time.Time       `json:"read_at"`
}
