package model

import (
	"time"

	"github.com/google/uuid"
)

// HouseholdModel mirrors the 'households' table. The code column holds the
// generated household code; codes are allocated from the household_code_seq
// sequence and formatted before insert, never by a persistence hook.
type HouseholdModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code         string    `gorm:"type:varchar(20);unique;not null"`
	HeadID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Address      string    `gorm:"type:text;not null"`
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Members []HouseholdMemberModel `gorm:"foreignKey:HouseholdID"`
}

// TableName explicitly sets the table name for GORM.
func (HouseholdModel) TableName() string {
	return "households"
}

// HouseholdMemberModel mirrors the 'household_members' table. The composite
// primary key makes membership naturally idempotent: re-inserting an
// existing (household, resident) pair conflicts instead of duplicating.
type HouseholdMemberModel struct {
	HouseholdID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResidentID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Relationship string    `gorm:"type:varchar(20);not null"`
	JoinedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (HouseholdMemberModel) TableName() string {
	return "household_members"
}
