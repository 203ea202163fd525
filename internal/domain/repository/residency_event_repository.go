// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// ErrResidencyEventNotFound is returned when a residency event is not found.
var ErrResidencyEventNotFound = errors.New("residency event not found")

// ListResidencyEventsFilter narrows residency-event listings.
type ListResidencyEventsFilter struct {
	Kind        entity.ResidencyEventKind
	State       entity.ResidencyEventState
	SubmitterID *uuid.UUID
	ResidentID  *uuid.UUID
	Limit       int
	Offset      int
}

// ResidencyEventRepository defines the operations for temporary-residence
// and temporary-absence request persistence. Both kinds share one table and
// one engine.
type ResidencyEventRepository interface {
	// Create persists a new residency event in the pending state.
	Create(ctx context.Context, event *entity.ResidencyEvent) error

	// FindByID retrieves a single residency event by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ResidencyEvent, error)

	// MarkProcessed transitions a pending event to processed with an
	// explicit outcome. The UPDATE is conditional on `state = pending`;
	// a caller racing a completed decision gets ErrRequestNotPending.
	MarkProcessed(ctx context.Context, id uuid.UUID, outcome entity.ResidencyEventOutcome, rejectionReason string, deciderID uuid.UUID, decidedAt time.Time) error

	// List retrieves residency events matching the filter, newest first.
	List(ctx context.Context, filter ListResidencyEventsFilter) ([]*entity.ResidencyEvent, error)
}
