package model

import (
	"time"

	"github.com/google/uuid"
)

// FeeItemModel mirrors the 'fee_items' table. Amounts are stored in the
// smallest currency unit.
type FeeItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Amount    int64     `gorm:"not null"`
	Mandatory bool      `gorm:"not null;default:false"`
	DueDate   time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FeeItemModel) TableName() string {
	return "fee_items"
}

// FeeReceiptModel mirrors the 'fee_receipts' table.
type FeeReceiptModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	FeeItemID   uuid.UUID `gorm:"type:uuid;not null;index"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount      int64     `gorm:"not null"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null"`
	PaidAt      time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FeeReceiptModel) TableName() string {
	return "fee_receipts"
}
