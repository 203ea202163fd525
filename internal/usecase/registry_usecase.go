package usecase

import (
	"context"
	"time"

	"commune/internal/domain/entity"
	"commune/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateResidentInput defines the data required to create a resident record directly.
type CreateResidentInput struct {
	Actor          entity.Actor
	IdentityNumber string
	FullName       string
	BirthDate      time.Time
	Sex            entity.Sex
	Origin         string
	Ethnicity      string
	Occupation     string
	Phone          string
}

// UpdateResidentInput defines the mutable fields of a resident record.
type UpdateResidentInput struct {
	Actor      entity.Actor
	ResidentID uuid.UUID
	FullName   string
	Occupation string
	Phone      string
	Status     entity.ResidentStatus
}

// CreateHouseholdInput defines the data required to register a household.
// The household code is generated; the head must be an existing resident.
type CreateHouseholdInput struct {
	Actor        entity.Actor
	HeadID       uuid.UUID
	Address      string
	RegisteredAt time.Time
}

// UpdateHouseholdInput defines the mutable fields of a household record.
// The generated code and head assignment are not updatable here; head
// changes go through the join-request workflow.
type UpdateHouseholdInput struct {
	Actor       entity.Actor
	HouseholdID uuid.UUID
	Address     string
}

// ResidentUsecase defines the interface for the resident registry CRUD surface.
type ResidentUsecase interface {
	Create(ctx context.Context, input CreateResidentInput) (*entity.Resident, error)
	Update(ctx context.Context, input UpdateResidentInput) (*entity.Resident, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Resident, error)
	List(ctx context.Context, actor entity.Actor, filter repository.ListResidentsFilter) ([]*entity.Resident, error)
}

// HouseholdUsecase defines the interface for the household registry CRUD surface.
type HouseholdUsecase interface {
	Create(ctx context.Context, input CreateHouseholdInput) (*entity.Household, error)
	Update(ctx context.Context, input UpdateHouseholdInput) (*entity.Household, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Household, error)
	List(ctx context.Context, actor entity.Actor, filter repository.ListHouseholdsFilter) ([]*entity.Household, error)
}
