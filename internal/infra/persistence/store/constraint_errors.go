package store

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports duplicate-key failures from either backend.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// Drivers without a translator still say so in the message.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate key")
}

func isForeignKeyConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation
}
