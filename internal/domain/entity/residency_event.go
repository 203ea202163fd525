// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResidencyEventKind distinguishes the two time-bounded residency
// declarations. Both kinds share one lifecycle and one engine.
type ResidencyEventKind string

const (
	// KindTemporaryResidence declares that a person will be staying at an
	// address inside the community for a bounded period.
	KindTemporaryResidence ResidencyEventKind = "temporary_residence"
	// KindTemporaryAbsence declares that a resident will be living away
	// from their registered address for a bounded period.
	KindTemporaryAbsence ResidencyEventKind = "temporary_absence"
)

// IsValid checks if the ResidencyEventKind is a valid value.
func (k ResidencyEventKind) IsValid() bool {
	return k == KindTemporaryResidence || k == KindTemporaryAbsence
}

// ResidencyEventState is the lifecycle state of a residency event request.
// Both approval and rejection funnel into the single terminal state
// "processed"; the explicit Outcome field discriminates between them.
type ResidencyEventState string

const (
	ResidencyEventPending   ResidencyEventState = "pending"
	ResidencyEventProcessed ResidencyEventState = "processed"
)

// ResidencyEventOutcome is the explicit decision outcome of a processed
// event. It replaces the older convention of inferring "rejected" from the
// mere presence of a rejection reason.
type ResidencyEventOutcome string

const (
	OutcomeApproved ResidencyEventOutcome = "approved"
	OutcomeRejected ResidencyEventOutcome = "rejected"
)

// ResidencyEvent is a temporary-residence or temporary-absence declaration,
// subject to approval. Approval does not mutate the resident or household
// registries; it only marks the declaration processed.
type ResidencyEvent struct {
	ID              uuid.UUID             `json:"id"`
	Kind            ResidencyEventKind    `json:"kind"`
	ResidentID      uuid.UUID             `json:"resident_id"`      // The subject of the declaration.
	Location        string                `json:"location"`         // Temporary address or destination text.
	StartDate       time.Time             `json:"start_date"`       // First day of the declared period.
	EndDate         time.Time             `json:"end_date"`         // Last day; must be strictly after StartDate.
	Reason          string                `json:"reason"`           // Free-text reason for the declaration.
	Note            string                `json:"note"`             // Optional free-text note.
	SubmitterID     uuid.UUID             `json:"submitter_id"`     // The account that submitted the declaration.
	State           ResidencyEventState   `json:"state"`            // pending / processed.
	Outcome         ResidencyEventOutcome `json:"outcome"`          // approved / rejected once processed.
	RejectionReason string                `json:"rejection_reason"` // Approver's reason when rejected.
	DeciderID       *uuid.UUID            `json:"decider_id"`       // The account that processed the declaration.
	DecidedAt       *time.Time            `json:"decided_at"`       // When the declaration was processed.
	SubmittedAt     time.Time             `json:"submitted_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ValidPeriod reports whether the declared period is well-formed: the end
// date strictly after the start date.
func (e *ResidencyEvent) ValidPeriod() bool {
	return e.EndDate.After(e.StartDate)
}
