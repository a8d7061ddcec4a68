package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for session tokens.
type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the bearer tokens handed to API clients
// after login.
type TokenService interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uuid.UUID, username string) (string, error)

	// ValidateToken checks signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenDuration returns how long issued tokens stay valid.
	TokenDuration() time.Duration
}
