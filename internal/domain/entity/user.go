// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. It is created once by registration and never
// modified afterwards.
type User struct {
	ID           uuid.UUID // Assigned by the store on insert.
	Username     string    // Trimmed and lowercased; unique.
	PasswordHash string    // bcrypt output. The raw password is never kept.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LogValue keeps the password hash out of structured logs.
func (u *User) LogValue() slog.Value {
	if u == nil {
		return slog.StringValue("<nil>")
	}

	return slog.GroupValue(
		slog.String("id", u.ID.String()),
		slog.String("username", u.Username),
	)
}
