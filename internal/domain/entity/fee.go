// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeeItem is a fee the community collects from households, either mandatory
// (e.g. sanitation) or voluntary (e.g. charity funds).
type FeeItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"` // Amount in the smallest currency unit.
	Mandatory bool      `json:"mandatory"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeReceipt records a payment of a fee item by a household.
type FeeReceipt struct {
	ID          uuid.UUID `json:"id"`
	FeeItemID   uuid.UUID `json:"fee_item_id"`
	HouseholdID uuid.UUID `json:"household_id"`
	Amount      int64     `json:"amount"`       // Amount actually paid.
	CollectorID uuid.UUID `json:"collector_id"` // The account that recorded the payment.
	PaidAt      time.Time `json:"paid_at"`
	CreatedAt   time.Time `json:"created_at"`
}
