// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for resident persistence.
var (
	// ErrResidentNotFound is returned when a resident is not found.
	ErrResidentNotFound = errors.New("resident not found")
	// ErrDuplicateIdentityNumber is returned when creating a resident whose
	// identity number is already registered.
	ErrDuplicateIdentityNumber = errors.New("identity number already registered")
)

// ListResidentsFilter narrows resident listings.
type ListResidentsFilter struct {
	HouseholdID *uuid.UUID
	Status      entity.ResidentStatus
	Limit       int
	Offset      int
}

// ResidentRepository defines the standard operations for resident persistence.
type ResidentRepository interface {
	// FindByID retrieves a single resident by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error)

	// FindByIdentityNumber retrieves a single resident by their national
	// identity number.
	FindByIdentityNumber(ctx context.Context, identityNumber string) (*entity.Resident, error)

	// Create persists a new resident entity to the storage.
	Create(ctx context.Context, resident *entity.Resident) error

	// Update modifies an existing resident entity in the storage.
	Update(ctx context.Context, resident *entity.Resident) error

	// List retrieves residents matching the filter.
	List(ctx context.Context, filter ListResidentsFilter) ([]*entity.Resident, error)
}
