package model

import (
	"time"

	"github.com/google/uuid"
)

// ResidentModel mirrors the 'residents' table. A NULL household_id marks an
// unhoused resident, eligible to be attached through a join request.
type ResidentModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	IdentityNumber string     `gorm:"type:varchar(12);unique;not null"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	BirthDate      time.Time  `gorm:"type:date;not null"`
	Sex            string     `gorm:"type:varchar(10);not null"`
	Origin         string     `gorm:"type:varchar(255)"`
	Ethnicity      string     `gorm:"type:varchar(100)"`
	Occupation     string     `gorm:"type:varchar(255)"`
	Phone          string     `gorm:"type:varchar(20)"`
	HouseholdID    *uuid.UUID `gorm:"type:uuid;index"`
	Relationship   string     `gorm:"type:varchar(20)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ResidentModel) TableName() string {
	return "residents"
}
