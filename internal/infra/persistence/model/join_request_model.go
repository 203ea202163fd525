package model

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequestModel mirrors the 'join_requests' table. The applicant snapshot
// is embedded as flat columns so a request stays readable even after the
// matched resident record changes.
type JoinRequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;index"`
	SubmitterID uuid.UUID `gorm:"type:uuid;not null;index"`

	ApplicantIdentityNumber string    `gorm:"type:varchar(12);not null;index"`
	ApplicantFullName       string    `gorm:"type:varchar(255);not null"`
	ApplicantBirthDate      time.Time `gorm:"type:date;not null"`
	ApplicantSex            string    `gorm:"type:varchar(10);not null"`
	ApplicantOrigin         string    `gorm:"type:varchar(255)"`
	ApplicantEthnicity      string    `gorm:"type:varchar(100)"`
	ApplicantOccupation     string    `gorm:"type:varchar(255)"`
	ApplicantPhone          string    `gorm:"type:varchar(20)"`

	Relationship  string     `gorm:"type:varchar(20);not null"`
	Reason        string     `gorm:"type:text"`
	State         string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ResidentID    *uuid.UUID `gorm:"type:uuid;index"`
	DeciderID     *uuid.UUID `gorm:"type:uuid"`
	DecidedAt     *time.Time
	RejectionNote string    `gorm:"type:text"`
	SubmittedAt   time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (JoinRequestModel) TableName() string {
	return "join_requests"
}
