// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"commune/internal/domain/entity"

	"github.com/google/uuid"
)

// Decision is the verdict an approver issues on a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// IsValid checks if the Decision is a valid value.
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// --- Input DTOs ---

// SubmitJoinRequestInput defines the data required to submit a join-household request.
type SubmitJoinRequestInput struct {
	Actor        entity.Actor
	HouseholdID  uuid.UUID
	Applicant    entity.ApplicantSnapshot
	Relationship entity.Relationship
	Reason       string
}

// DecideJoinRequestInput defines the data required to decide a pending join request.
type DecideJoinRequestInput struct {
	Actor         entity.Actor
	RequestID     uuid.UUID
	Decision      Decision
	RejectionNote string
}

// ListJoinRequestsInput defines the data required to list join requests.
// The result is role-scoped: non-approvers only see their own submissions.
type ListJoinRequestsInput struct {
	Actor  entity.Actor
	State  entity.JoinRequestState
	Limit  int
	Offset int
}

// JoinRequestUsecase defines the interface for the join-household request workflow.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type JoinRequestUsecase interface {
	// Submit validates and persists a new join-household request in the
	// pending state. It fails with a conflict when the applicant's identity
	// number already belongs to a housed resident.
	Submit(ctx context.Context, input SubmitJoinRequestInput) (*entity.JoinRequest, error)

	// Decide approves or rejects a pending request. Approval resolves or
	// creates the resident, links it to the household and appends the
	// member entry, atomically with the state transition.
	Decide(ctx context.Context, input DecideJoinRequestInput) (*entity.JoinRequest, error)

	// Get retrieves a single request, subject to the actor's view scope.
	Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.JoinRequest, error)

	// List retrieves requests visible to the actor.
	List(ctx context.Context, input ListJoinRequestsInput) ([]*entity.JoinRequest, error)
}
