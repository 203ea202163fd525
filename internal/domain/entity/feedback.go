// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackStatus is the handling state of a citizen feedback entry.
type FeedbackStatus string

const (
	FeedbackOpen      FeedbackStatus = "open"
	FeedbackResponded FeedbackStatus = "responded"
)

// Feedback is a citizen-submitted report or suggestion addressed to the
// community administration.
type Feedback struct {
	ID          uuid.UUID      `json:"id"`
	AuthorID    uuid.UUID      `json:"author_id"` // The account that submitted the feedback.
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Category    string         `json:"category"` // e.g. sanitation, security, infrastructure.
	Status      FeedbackStatus `json:"status"`
	Response    string         `json:"response"`     // Administration's reply once responded.
	ResponderID *uuid.UUID     `json:"responder_id"` // The account that responded.
	RespondedAt *time.Time     `json:"responded_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
