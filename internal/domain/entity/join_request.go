// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequestState is the lifecycle state of a join-household request.
// Transitions are one-way and terminal: pending -> approved | rejected.
type JoinRequestState string

const (
	JoinRequestPending  JoinRequestState = "pending"
	JoinRequestApproved JoinRequestState = "approved"
	JoinRequestRejected JoinRequestState = "rejected"
)

// IsTerminal reports whether the state admits no further transitions.
func (s JoinRequestState) IsTerminal() bool {
	return s == JoinRequestApproved || s == JoinRequestRejected
}

// ApplicantSnapshot is the personal data of the person applying to join a
// household, embedded in the request at submission time. It is the source
// for a new Resident record when approval finds no existing match.
type ApplicantSnapshot struct {
	IdentityNumber string    `json:"identity_number"`
	FullName       string    `json:"full_name"`
	BirthDate      time.Time `json:"birth_date"`
	Sex            Sex       `json:"sex"`
	Origin         string    `json:"origin"`
	Ethnicity      string    `json:"ethnicity"`
	Occupation     string    `json:"occupation"`
	Phone          string    `json:"phone"`
}

// JoinRequest is an application for a person to be added to an existing
// household's membership. An approved request always carries a non-nil
// ResidentID: the resident that was matched or created during approval.
type JoinRequest struct {
	ID            uuid.UUID         `json:"id"`
	HouseholdID   uuid.UUID         `json:"household_id"`   // The household the applicant wants to join.
	SubmitterID   uuid.UUID         `json:"submitter_id"`   // The account that submitted the request.
	Applicant     ApplicantSnapshot `json:"applicant"`      // Snapshot of the applicant's personal data.
	Relationship  Relationship      `json:"relationship"`   // Declared relationship to the head of household.
	Reason        string            `json:"reason"`         // Free-text reason for the request.
	State         JoinRequestState  `json:"state"`          // pending / approved / rejected.
	ResidentID    *uuid.UUID        `json:"resident_id"`    // Matched or created resident; speculative while pending.
	DeciderID     *uuid.UUID        `json:"decider_id"`     // The account that decided the request.
	DecidedAt     *time.Time        `json:"decided_at"`     // When the decision was made.
	RejectionNote string            `json:"rejection_note"` // Approver's note on rejection.
	SubmittedAt   time.Time         `json:"submitted_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewResidentFromSnapshot builds a Resident from the applicant snapshot,
// linked to the given household with the declared relationship.
func NewResidentFromSnapshot(snapshot ApplicantSnapshot, householdID uuid.UUID, relationship Relationship) *Resident {
	hhID := householdID

	return &Resident{
		ID:             uuid.New(),
		IdentityNumber: snapshot.IdentityNumber,
		FullName:       snapshot.FullName,
		BirthDate:      snapshot.BirthDate,
		Sex:            snapshot.Sex,
		Origin:         snapshot.Origin,
		Ethnicity:      snapshot.Ethnicity,
		Occupation:     snapshot.Occupation,
		Phone:          snapshot.Phone,
		HouseholdID:    &hhID,
		Relationship:   relationship,
		Status:         ResidentStatusActive,
	}
}
