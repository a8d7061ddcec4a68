// Package model holds the GORM persistence models. They never leave the
// persistence layer; repositories map them to domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 assigned on insert so
// SQLite and PostgreSQL behave the same.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered ID when none is set.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}
