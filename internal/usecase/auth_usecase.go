// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"productsmanager/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput carries the signed-in user and a bearer token for API clients.
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   time.Duration
}

// AuthUsecase moves the session between anonymous and authenticated.
type AuthUsecase interface {
	// Register creates an account. It does not sign the user in.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and replaces the session identity.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout clears the session. Calling it while anonymous is a no-op.
	Logout(ctx context.Context)

	// CurrentUser returns the session identity, if any.
	CurrentUser(ctx context.Context) (*entity.User, bool)

	// Authenticate accepts a bearer token only if it was issued to the
	// identity that currently holds the session.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}
