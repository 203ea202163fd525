package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackModel mirrors the 'feedbacks' table.
type FeedbackModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Content     string     `gorm:"type:text;not null"`
	Category    string     `gorm:"type:varchar(100)"`
	Status      string     `gorm:"type:varchar(20);not null;default:'open';index"`
	Response    string     `gorm:"type:text"`
	ResponderID *uuid.UUID `gorm:"type:uuid"`
	RespondedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FeedbackModel) TableName() string {
	return "feedbacks"
}
