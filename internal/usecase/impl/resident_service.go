package impl

import (
	"context"
	"log/slog"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/policy"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type residentService struct {
	residentRepo repository.ResidentRepository
	logger       *slog.Logger
}

// NewResidentService creates a new resident registry service instance.
func NewResidentService(residentRepo repository.ResidentRepository, logger *slog.Logger) usecase.ResidentUsecase {
	return &residentService{
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// Create registers a resident record directly, without a join request.
func (s *residentService) Create(ctx context.Context, input usecase.CreateResidentInput) (*entity.Resident, error) {
	if !policy.CanManageRegistry(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}
	if !entity.ValidIdentityNumber(input.IdentityNumber) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("identity number must be exactly 12 digits")
	}
	if input.FullName == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("full name is required")
	}

	existing, err := s.residentRepo.FindByIdentityNumber(ctx, input.IdentityNumber)
	if err != nil && !errors.Is(err, repository.ErrResidentNotFound) {
		return nil, errors.Wrap(err, "failed to look up identity number")
	}
	if existing != nil {
		return nil, domainerrors.ErrIdentityNumberTaken
	}

	resident := &entity.Resident{
		ID:             uuid.New(),
		IdentityNumber: input.IdentityNumber,
		FullName:       input.FullName,
		BirthDate:      input.BirthDate,
		Sex:            input.Sex,
		Origin:         input.Origin,
		Ethnicity:      input.Ethnicity,
		Occupation:     input.Occupation,
		Phone:          input.Phone,
		Status:         entity.ResidentStatusActive,
	}

	if err := s.residentRepo.Create(ctx, resident); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentityNumber) {
			return nil, domainerrors.ErrIdentityNumberTaken
		}

		return nil, errors.Wrap(err, "failed to create resident")
	}

	return resident, nil
}

// Update modifies the mutable fields of a resident record. Household links
// are owned by the join-request workflow and are not touched here.
func (s *residentService) Update(ctx context.Context, input usecase.UpdateResidentInput) (*entity.Resident, error) {
	if !policy.CanManageRegistry(input.Actor.Roles) {
		return nil, domainerrors.ErrForbidden
	}

	resident, err := s.residentRepo.FindByID(ctx, input.ResidentID)
	if err != nil {
		if errors.Is(err, repository.ErrResidentNotFound) {
			return nil, domainerrors.ErrResidentNotFound
		}

		return nil, errors.Wrap(err, "failed to find resident")
	}

	if input.FullName != "" {
		resident.FullName = input.FullName
	}
	if input.Occupation != "" {
		resident.Occupation = input.Occupation
	}
	if input.Phone != "" {
		resident.Phone = input.Phone
	}
	if input.Status != "" {
		resident.Status = input.Status
	}

	if err := s.residentRepo.Update(ctx, resident); err != nil {
		return nil, errors.Wrap(err, "failed to update resident")
	}

	return resident, nil
}

// Get retrieves a single resident record.
func (s *residentService) Get(ctx context.Context, id uuid.UUID) (*entity.Resident, error) {
	resident, err := s.residentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResidentNotFound) {
			return nil, domainerrors.ErrResidentNotFound
		}

		return nil, errors.Wrap(err, "failed to find resident")
	}

	return resident, nil
}

// List retrieves residents matching the filter.
func (s *residentService) List(ctx context.Context, actor entity.Actor, filter repository.ListResidentsFilter) ([]*entity.Resident, error) {
	residents, err := s.residentRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list residents")
	}

	return residents, nil
}
