// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for join-request persistence.
var (
	// ErrJoinRequestNotFound is returned when a join request is not found.
	ErrJoinRequestNotFound = errors.New("join request not found")
	// ErrRequestNotPending is returned by the conditional decision updates
	// when the request has already left the pending state. It is the
	// mechanism that guarantees at most one decision per request.
	ErrRequestNotPending = errors.New("request is not pending")
)

// ListJoinRequestsFilter narrows join-request listings.
type ListJoinRequestsFilter struct {
	State       entity.JoinRequestState
	SubmitterID *uuid.UUID
	HouseholdID *uuid.UUID
	Limit       int
	Offset      int
}

// JoinRequestRepository defines the operations for join-request persistence.
//
// The two Mark methods perform a conditional state transition: the UPDATE
// carries a `state = pending` predicate, so of any number of concurrent
// deciders exactly one observes an affected row and every other caller gets
// ErrRequestNotPending.
type JoinRequestRepository interface {
	// Create persists a new join request in the pending state.
	Create(ctx context.Context, request *entity.JoinRequest) error

	// FindByID retrieves a single join request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error)

	// MarkApproved transitions a pending request to approved, recording the
	// decider, the decision time and the resolved resident.
	MarkApproved(ctx context.Context, id uuid.UUID, deciderID, residentID uuid.UUID, decidedAt time.Time) error

	// MarkRejected transitions a pending request to rejected, recording the
	// decider, the decision time and the rejection note.
	MarkRejected(ctx context.Context, id uuid.UUID, deciderID uuid.UUID, note string, decidedAt time.Time) error

	// List retrieves join requests matching the filter, newest first.
	List(ctx context.Context, filter ListJoinRequestsFilter) ([]*entity.JoinRequest, error)
}
