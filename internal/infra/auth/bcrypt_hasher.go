// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"productsmanager/config"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher builds the hasher from config. A zero cost means bcrypt.DefaultCost.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost returns a hasher with an explicit work factor.
func NewBcryptHasherWithCost(cost int) (service.PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &bcryptHasher{cost: cost}, nil
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", domainerrors.ErrPasswordTooLong
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash. Passwords Hash
// would refuse never match, since bcrypt ignores bytes past the limit.
func (h *bcryptHasher) Check(password, hash string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
