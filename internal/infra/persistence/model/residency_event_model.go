package model

import (
	"time"

	"github.com/google/uuid"
)

// ResidencyEventModel mirrors the 'residency_events' table. Temporary
// residence and temporary absence declarations share the table; the kind
// column discriminates them.
type ResidencyEventModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Kind            string     `gorm:"type:varchar(30);not null;index"`
	ResidentID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Location        string     `gorm:"type:text;not null"`
	StartDate       time.Time  `gorm:"type:date;not null"`
	EndDate         time.Time  `gorm:"type:date;not null"`
	Reason          string     `gorm:"type:text"`
	Note            string     `gorm:"type:text"`
	SubmitterID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	State           string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Outcome         string     `gorm:"type:varchar(20)"`
	RejectionReason string     `gorm:"type:text"`
	DeciderID       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time
	SubmittedAt     time.Time `gorm:"not null"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ResidencyEventModel) TableName() string {
	return "residency_events"
}
