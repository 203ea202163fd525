package usecase

import (
	"context"

	"commune/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new account.
type RegisterUserInput struct {
	Actor      entity.Actor
	Name       string
	Email      string
	Password   string
	Roles      entity.Roles
	ResidentID *uuid.UUID
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for account-related business operations.
type UserUsecase interface {
	// Register creates a new account. Only administrators may register accounts.
	Register(ctx context.Context, input RegisterUserInput) (*entity.User, error)

	// Login verifies credentials and issues access/refresh tokens.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// GetProfile retrieves the account of the calling actor.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
