// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"productsmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user is absent.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// Create persists a new user and fills in its generated ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by normalized username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
