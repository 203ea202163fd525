// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"commune/internal/domain/entity"
	"commune/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for household persistence.
var (
	// ErrHouseholdNotFound is returned when a household is not found.
	ErrHouseholdNotFound = errors.New("household not found")
	// ErrDuplicateHouseholdCode is returned when a generated household code collides.
	ErrDuplicateHouseholdCode = errors.New("household code already exists")
)

// ListHouseholdsFilter narrows household listings.
type ListHouseholdsFilter struct {
	Limit  int
	Offset int
}

// HouseholdRepository defines the standard operations for household persistence.
type HouseholdRepository interface {
	// FindByID retrieves a single household, including its member entries.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error)

	// FindByCode retrieves a single household by its generated code.
	FindByCode(ctx context.Context, code string) (*entity.Household, error)

	// Create persists a new household entity, including its member entries.
	Create(ctx context.Context, household *entity.Household) error

	// Update modifies a household's own fields (head, address). Member
	// entries are managed through AppendMember.
	Update(ctx context.Context, household *entity.Household) error

	// AppendMember adds a member entry to the household. It is idempotent:
	// appending a resident that is already a member is a no-op, so retries
	// of a partially applied approval converge without duplicate entries.
	AppendMember(ctx context.Context, householdID uuid.UUID, member entity.HouseholdMember) error

	// NextCodeSequence returns the next value of the household code sequence.
	NextCodeSequence(ctx context.Context) (int64, error)

	// List retrieves households matching the filter.
	List(ctx context.Context, filter ListHouseholdsFilter) ([]*entity.Household, error)
}
