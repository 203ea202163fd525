package impl

import (
	"context"
	"log/slog"
	"time"

	"commune/config"
	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/policy"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type householdService struct {
	householdRepo repository.HouseholdRepository
	residentRepo  repository.ResidentRepository
	config        *config.Config
	logger        *slog.Logger
}

// NewHouseholdService creates a new household registry service instance.
func NewHouseholdService(
	householdRepo repository.HouseholdRepository,
	residentRepo repository.ResidentRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.HouseholdUsecase {
	return &householdService{
		householdRepo: householdRepo,
		residentRepo:  residentRepo,
		config:        cfg,
		logger:        logger,
	}
}

// Create registers a new household. The household code is allocated from
// the code sequence and formatted explicitly here, before persistence, so
// the numbering logic stays testable without a live store.
func (s *householdService) Create(ctx context.Context, input usecase.CreateHouseholdInput) (*entity.Household, error) {
	if !policy.CanManageRegistry(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Address == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("address is required")
	}

	head, err := s.residentRepo.FindByID(ctx, input.HeadID)
	if err != nil {
		if errors.Is(err, repository.ErrResidentNotFound) {
			return nil, domainerrors.ErrResidentNotFound
		}

		return nil, errors.Wrap(err, "failed to find head resident")
	}
	if head.IsHoused() {
		return nil, domainerrors.ErrResidentAlreadyHoused
	}

	seq, err := s.householdRepo.NextCodeSequence(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to allocate household code")
	}

	registeredAt := input.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = time.Now()
	}

	household := &entity.Household{
		ID:      uuid.New(),
		Code:    entity.FormatHouseholdCode(s.config.Registry.HouseholdCodePrefix, s.config.Registry.HouseholdCodeWidth, seq),
		HeadID:  head.ID,
		Address: input.Address,
		Members: []entity.HouseholdMember{
			// The head is always the first member entry.
			{ResidentID: head.ID, Relationship: entity.RelationshipHead, JoinedAt: registeredAt},
		},
		RegisteredAt: registeredAt,
	}

	if err := s.householdRepo.Create(ctx, household); err != nil {
		return nil, errors.Wrap(err, "failed to create household")
	}

	householdID := household.ID
	head.HouseholdID = &householdID
	head.Relationship = entity.RelationshipHead
	if err := s.residentRepo.Update(ctx, head); err != nil {
		return nil, errors.Wrap(err, "failed to link head resident to household")
	}

	return household, nil
}

// Update modifies the mutable fields of a household record.
func (s *householdService) Update(ctx context.Context, input usecase.UpdateHouseholdInput) (*entity.Household, error) {
	if !policy.CanManageRegistry(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Address == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("address is required")
	}

	household, err := s.householdRepo.FindByID(ctx, input.HouseholdID)
	if err != nil {
		if errors.Is(err, repository.ErrHouseholdNotFound) {
			return nil, domainerrors.ErrHouseholdNotFound
		}

		return nil, errors.Wrap(err, "failed to find household")
	}

	household.Address = input.Address
	if err := s.householdRepo.Update(ctx, household); err != nil {
		return nil, errors.Wrap(err, "failed to update household")
	}

	return household, nil
}

// Get retrieves a single household with its member entries.
func (s *householdService) Get(ctx context.Context, id uuid.UUID) (*entity.Household, error) {
	household, err := s.householdRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHouseholdNotFound) {
			return nil, domainerrors.ErrHouseholdNotFound
		}

		return nil, errors.Wrap(err, "failed to find household")
	}

	return household, nil
}

// List retrieves households matching the filter.
func (s *householdService) List(ctx context.Context, actor entity.Actor, filter repository.ListHouseholdsFilter) ([]*entity.Household, error) {
	households, err := s.householdRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list households")
	}

	return households, nil
}
