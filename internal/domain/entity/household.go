// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Household is a registered residential unit with one head and a set of
// member residents. The head must also appear in the member list.
type Household struct {
	ID           uuid.UUID         `json:"id"`            // The unique identifier for the household.
	Code         string            `json:"code"`          // Sequentially generated household code, e.g. HK00042.
	HeadID       uuid.UUID         `json:"head_id"`       // The resident who heads this household.
	Address      string            `json:"address"`       // The registered address of the household.
	Members      []HouseholdMember `json:"members"`       // Member entries; no duplicate resident references.
	RegisteredAt time.Time         `json:"registered_at"` // Date the household was registered.
	CreatedAt    time.Time         `json:"created_at"`    // Timestamp of when this record was created.
	UpdatedAt    time.Time         `json:"updated_at"`    // Timestamp of the last modification.
}

// HouseholdMember is a single membership entry: a resident reference plus
// the relationship of that resident to the head of the household.
type HouseholdMember struct {
	ResidentID   uuid.UUID    `json:"resident_id"`
	Relationship Relationship `json:"relationship"`
	JoinedAt     time.Time    `json:"joined_at"`
}

// HasMember reports whether the household already lists the given resident.
func (h *Household) HasMember(residentID uuid.UUID) bool {
	for _, m := range h.Members {
		if m.ResidentID == residentID {
			return true
		}
	}

	return false
}

// FormatHouseholdCode builds a household code from a prefix and a sequence
// number, zero-padded to the given width. It replaces the implicit pre-save
// numbering the registry used to rely on: code generation is an explicit
// step invoked before persistence.
func FormatHouseholdCode(prefix string, width int, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, width, seq)
}
