package impl

import (
	"context"
	"log/slog"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/domain/service"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewUserService creates a new account service instance.
func NewUserService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register creates a new account. Only administrators may register accounts.
func (s *userService) Register(ctx context.Context, input usecase.RegisterUserInput) (*entity.User, error) {
	if !input.Actor.Roles.Contains(entity.RoleAdmin) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}
	for _, role := range input.Roles {
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role: " + role.String())
		}
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}
	if existing != nil {
		return nil, domainerrors.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Roles:        input.Roles,
		ResidentID:   input.ResidentID,
	}
	if len(user.Roles) == 0 {
		user.Roles = entity.Roles{entity.RoleResident}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// Login verifies credentials and issues access/refresh tokens.
func (s *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenSvc.GenerateTokens(user.ID, user.Roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// GetProfile retrieves the account of the calling actor.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}
