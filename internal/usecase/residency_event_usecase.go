package usecase

import (
	"context"
	"time"

	"commune/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SubmitResidencyEventInput defines the data required to declare a
// temporary residence or temporary absence.
type SubmitResidencyEventInput struct {
	Actor      entity.Actor
	Kind       entity.ResidencyEventKind
	ResidentID uuid.UUID
	Location   string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Note       string
}

// DecideResidencyEventInput defines the data required to process a pending declaration.
type DecideResidencyEventInput struct {
	Actor           entity.Actor
	EventID         uuid.UUID
	Decision        Decision
	RejectionReason string
}

// ListResidencyEventsInput defines the data required to list declarations.
type ListResidencyEventsInput struct {
	Actor  entity.Actor
	Kind   entity.ResidencyEventKind
	State  entity.ResidencyEventState
	Limit  int
	Offset int
}

// ResidencyEventUsecase defines the interface for the temporary-residence
// and temporary-absence workflows. One generic engine serves both kinds.
type ResidencyEventUsecase interface {
	// Submit validates and persists a new declaration in the pending state.
	// The declared period must end strictly after it starts.
	Submit(ctx context.Context, input SubmitResidencyEventInput) (*entity.ResidencyEvent, error)

	// Decide processes a pending declaration to the terminal processed
	// state with an explicit approved/rejected outcome, and notifies the
	// submitter of the outcome.
	Decide(ctx context.Context, input DecideResidencyEventInput) (*entity.ResidencyEvent, error)

	// Get retrieves a single declaration, subject to the actor's view scope.
	Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.ResidencyEvent, error)

	// List retrieves declarations visible to the actor.
	List(ctx context.Context, input ListResidencyEventsInput) ([]*entity.ResidencyEvent, error)
}
