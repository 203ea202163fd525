// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the system, resolved by the identity gate. The core
// request workflow consumes only the account's ID, roles and optional
// resident link; credential handling lives entirely in the auth layer.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"` // Primary contact email, used as the login identifier.
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Roles        Roles      `json:"roles"`
	ResidentID   *uuid.UUID `json:"resident_id"` // The resident record this account is linked to, if any.
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Actor is the resolved identity of the caller of an operation: the facts
// the request workflow trusts from the identity gate.
type Actor struct {
	UserID     uuid.UUID
	Roles      Roles
	ResidentID *uuid.UUID
}
