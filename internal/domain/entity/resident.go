// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
	"unicode"

	"github.com/google/uuid"
)

// identityNumberLength is the fixed length of a national identity number.
const identityNumberLength = 12

// Sex represents the registered sex of a resident.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// IsValid checks if the Sex is a valid value.
func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	default:
		return false
	}
}

// Relationship describes how a resident relates to the head of their household.
type Relationship string

const (
	RelationshipHead       Relationship = "head"
	RelationshipSpouse     Relationship = "spouse"
	RelationshipChild      Relationship = "child"
	RelationshipParent     Relationship = "parent"
	RelationshipSibling    Relationship = "sibling"
	RelationshipGrandchild Relationship = "grandchild"
	RelationshipOther      Relationship = "other"
)

// IsValid checks if the Relationship is a valid value.
func (r Relationship) IsValid() bool {
	switch r {
	case RelationshipHead, RelationshipSpouse, RelationshipChild,
		RelationshipParent, RelationshipSibling, RelationshipGrandchild, RelationshipOther:
		return true
	default:
		return false
	}
}

// ResidentStatus represents the registration status of a resident record.
type ResidentStatus string

const (
	ResidentStatusActive   ResidentStatus = "active"
	ResidentStatusInactive ResidentStatus = "inactive"
)

// Resident is a person record in the registry. A resident may or may not be
// linked to a household; an unlinked resident has a nil HouseholdID and is
// eligible to be attached through a join-household request.
type Resident struct {
	ID             uuid.UUID      `json:"id"`              // The unique identifier for the resident record.
	IdentityNumber string         `json:"identity_number"` // National identity number, globally unique, 12 digits.
	FullName       string         `json:"full_name"`       // The resident's full legal name.
	BirthDate      time.Time      `json:"birth_date"`      // Date of birth.
	Sex            Sex            `json:"sex"`             // Registered sex.
	Origin         string         `json:"origin"`          // Ancestral origin (place of family registration).
	Ethnicity      string         `json:"ethnicity"`       // Registered ethnicity.
	Occupation     string         `json:"occupation"`      // Current occupation.
	Phone          string         `json:"phone"`           // Contact phone number.
	HouseholdID    *uuid.UUID     `json:"household_id"`    // The household this resident belongs to, nil if unhoused.
	Relationship   Relationship   `json:"relationship"`    // Relationship to the head of the linked household.
	Status         ResidentStatus `json:"status"`          // Registration status (active/inactive).
	CreatedAt      time.Time      `json:"created_at"`      // Timestamp of when this record was created.
	UpdatedAt      time.Time      `json:"updated_at"`      // Timestamp of the last modification.
}

// IsHoused reports whether the resident is currently linked to a household.
func (r *Resident) IsHoused() bool {
	return r.HouseholdID != nil
}

// ValidIdentityNumber reports whether s is a well-formed identity number:
// exactly twelve numeric digits.
func ValidIdentityNumber(s string) bool {
	if len(s) != identityNumberLength {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}

	return true
}
