package usecase

import (
	"context"

	"commune/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SubmitFeedbackInput defines the data required to submit citizen feedback.
type SubmitFeedbackInput struct {
	Actor    entity.Actor
	Title    string
	Content  string
	Category string
}

// RespondFeedbackInput defines the data required to respond to feedback.
type RespondFeedbackInput struct {
	Actor      entity.Actor
	FeedbackID uuid.UUID
	Response   string
}

// FeedbackUsecase defines the interface for citizen feedback operations.
type FeedbackUsecase interface {
	// Submit records a new feedback entry from the calling actor.
	Submit(ctx context.Context, input SubmitFeedbackInput) (*entity.Feedback, error)

	// Respond records the administration's reply and notifies the author.
	// Restricted to supervisors and admins.
	Respond(ctx context.Context, input RespondFeedbackInput) (*entity.Feedback, error)

	// List retrieves feedback entries visible to the actor: responders see
	// everything, other actors only their own submissions.
	List(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.Feedback, error)
}
