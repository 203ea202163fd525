package impl

import (
	"context"
	"testing"
	"time"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestResidentService() (usecase.ResidentUsecase, *mockResidentRepository) {
	residentRepo := new(mockResidentRepository)

	return NewResidentService(residentRepo, newDiscardLogger()), residentRepo
}

func TestResidentService_Create_Success(t *testing.T) {
	service, residentRepo := createTestResidentService()

	ctx := context.Background()

	residentRepo.On("FindByIdentityNumber", ctx, "079201012345").
		Return(nil, repository.ErrResidentNotFound)
	residentRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Resident) bool {
		return r.IdentityNumber == "079201012345" &&
			r.Status == entity.ResidentStatusActive &&
			r.HouseholdID == nil
	})).Return(nil)

	resident, err := service.Create(ctx, usecase.CreateResidentInput{
		Actor:          supervisorActor(),
		IdentityNumber: "079201012345",
		FullName:       "Nguyen Van An",
		BirthDate:      time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC),
		Sex:            entity.SexMale,
	})

	require.NoError(t, err)
	assert.False(t, resident.IsHoused())
}

func TestResidentService_Create_DuplicateIdentityNumber(t *testing.T) {
	service, residentRepo := createTestResidentService()

	ctx := context.Background()

	residentRepo.On("FindByIdentityNumber", ctx, "079201012345").
		Return(&entity.Resident{ID: uuid.New(), IdentityNumber: "079201012345"}, nil)

	_, err := service.Create(ctx, usecase.CreateResidentInput{
		Actor:          supervisorActor(),
		IdentityNumber: "079201012345",
		FullName:       "Nguyen Van An",
		BirthDate:      time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC),
		Sex:            entity.SexMale,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNumberTaken))
	residentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResidentService_Update_LeavesHouseholdLinkAlone(t *testing.T) {
	service, residentRepo := createTestResidentService()

	ctx := context.Background()
	householdID := uuid.New()
	resident := &entity.Resident{
		ID:          uuid.New(),
		FullName:    "Nguyen Van An",
		Occupation:  "teacher",
		HouseholdID: &householdID,
		Status:      entity.ResidentStatusActive,
	}

	residentRepo.On("FindByID", ctx, resident.ID).Return(resident, nil)
	residentRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Resident) bool {
		return r.Occupation == "engineer" &&
			r.HouseholdID != nil && *r.HouseholdID == householdID
	})).Return(nil)

	updated, err := service.Update(ctx, usecase.UpdateResidentInput{
		Actor:      supervisorActor(),
		ResidentID: resident.ID,
		Occupation: "engineer",
	})

	require.NoError(t, err)
	assert.Equal(t, "engineer", updated.Occupation)
	assert.Equal(t, "Nguyen Van An", updated.FullName)
}

func TestResidentService_Update_ForbiddenForAccountant(t *testing.T) {
	service, _ := createTestResidentService()

	_, err := service.Update(context.Background(), usecase.UpdateResidentInput{
		Actor:      accountantActor(),
		ResidentID: uuid.New(),
		FullName:   "New Name",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestResidentService_Get_NotFound(t *testing.T) {
	service, residentRepo := createTestResidentService()

	ctx := context.Background()
	id := uuid.New()

	residentRepo.On("FindByID", ctx, id).Return(nil, repository.ErrResidentNotFound)

	_, err := service.Get(ctx, id)

	assert.True(t, errors.Is(err, domainerrors.ErrResidentNotFound))
}
