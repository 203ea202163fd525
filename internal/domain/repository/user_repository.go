// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
var (
	// ErrUserNotFound is returned when an account is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the standard operations for account persistence.
type UserRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new account entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, user *entity.User) error
}
