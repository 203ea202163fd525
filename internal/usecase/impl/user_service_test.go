package impl

import (
	"context"
	"testing"

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

type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockUserRepository
	hasher   *mockPasswordHasher
	tokenSvc *mockTokenService
}

func createTestUserService() userServiceFixtures {
	userRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenSvc := new(mockTokenService)

	service := NewUserService(userRepo, hasher, tokenSvc, newDiscardLogger())

	return userServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

func adminActor() entity.Actor {
	return entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAdmin}}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()
	input := usecase.RegisterUserInput{
		Actor:    adminActor(),
		Name:     "Le Van Cuong",
		Email:    "cuong@example.com",
		Password: "Password123!",
		Roles:    entity.Roles{entity.RoleHouseholdHead},
	}

	fx.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == input.Email && u.PasswordHash == "hashed_password"
	})).Return(nil)

	user, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Email, user.Email)
	assert.Equal(t, entity.Roles{entity.RoleHouseholdHead}, user.Roles)
}

func TestUserService_Register_DefaultsToResidentRole(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()
	input := usecase.RegisterUserInput{
		Actor:    adminActor(),
		Email:    "resident@example.com",
		Password: "Password123!",
	}

	fx.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.Anything).Return(nil)

	user, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.Roles{entity.RoleResident}, user.Roles)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()
	input := usecase.RegisterUserInput{
		Actor:    adminActor(),
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.userRepo.On("FindByEmail", ctx, input.Email).
		Return(&entity.User{ID: uuid.New(), Email: input.Email}, nil)

	_, err := fx.service.Register(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Register_ForbiddenForNonAdmin(t *testing.T) {
	fx := createTestUserService()

	_, err := fx.service.Register(context.Background(), usecase.RegisterUserInput{
		Actor:    supervisorActor(),
		Email:    "someone@example.com",
		Password: "Password123!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestUserService_Register_RejectsUnknownRole(t *testing.T) {
	fx := createTestUserService()

	_, err := fx.service.Register(context.Background(), usecase.RegisterUserInput{
		Actor:    adminActor(),
		Email:    "someone@example.com",
		Password: "Password123!",
		Roles:    entity.Roles{entity.Role("mayor")},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "cuong@example.com",
		PasswordHash: "hashed_password",
		Roles:        entity.Roles{entity.RoleHouseholdHead},
	}

	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "Password123!", "hashed_password").Return(true)
	fx.tokenSvc.On("GenerateTokens", user.ID, []string{"householdHead"}).
		Return("access", "refresh", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "cuong@example.com", PasswordHash: "hashed_password"}

	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "wrong", "hashed_password").Return(false)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "wrong"})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	fx := createTestUserService()

	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
