// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// ErrFeedbackNotFound is returned when a feedback entry is not found.
var ErrFeedbackNotFound = errors.New("feedback not found")

// ListFeedbackFilter narrows feedback listings.
type ListFeedbackFilter struct {
	AuthorID *uuid.UUID
	Status   entity.FeedbackStatus
	Limit    int
	Offset   int
}

// FeedbackRepository defines the operations for citizen feedback persistence.
type FeedbackRepository interface {
	// Create persists a new feedback entry.
	Create(ctx context.Context, feedback *entity.Feedback) error

	// FindByID retrieves a feedback entry by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error)

	// Update modifies an existing feedback entry (status, response).
	Update(ctx context.Context, feedback *entity.Feedback) error

	// List retrieves feedback entries matching the filter, newest first.
	List(ctx context.Context, filter ListFeedbackFilter) ([]*entity.Feedback, error)
}
