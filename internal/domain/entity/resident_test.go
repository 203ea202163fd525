package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidIdentityNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"twelve digits", "079201012345", true},
		{"too short", "07920101234", false},
		{"too long", "0792010123456", false},
		{"empty", "", false},
		{"letters", "07920101234a", false},
		{"spaces", "079201 12345", false},
		{"arabic-indic digits are rejected", "٠٧٩٢٠١٠١٢٣٤٥", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidIdentityNumber(tt.input))
		})
	}
}

func TestResident_IsHoused(t *testing.T) {
	resident := &Resident{ID: uuid.New()}
	assert.False(t, resident.IsHoused())

	householdID := uuid.New()
	resident.HouseholdID = &householdID
	assert.True(t, resident.IsHoused())
}

func TestNewResidentFromSnapshot(t *testing.T) {
	snapshot := ApplicantSnapshot{
		IdentityNumber: "079201012345",
		FullName:       "Nguyen Van An",
		BirthDate:      time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC),
		Sex:            SexMale,
		Origin:         "Quang Nam",
	}
	householdID := uuid.New()

	resident := NewResidentFromSnapshot(snapshot, householdID, RelationshipChild)

	assert.NotEqual(t, uuid.Nil, resident.ID)
	assert.Equal(t, snapshot.IdentityNumber, resident.IdentityNumber)
	assert.Equal(t, snapshot.FullName, resident.FullName)
	assert.Equal(t, RelationshipChild, resident.Relationship)
	assert.Equal(t, ResidentStatusActive, resident.Status)
	if assert.NotNil(t, resident.HouseholdID) {
		assert.Equal(t, householdID, *resident.HouseholdID)
	}
}
