// Package session holds the identity that is currently signed in.
//
// A Session is created once by the application container and handed by
// reference to the services that need it. It is in-memory only and carries
// no lock: the presentation layer serializes access.
package session

import (
	"productsmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// Session is the zero-or-one authenticated identity of this process.
type Session struct {
	user *entity.User
}

// New returns an anonymous session.
func New() *Session {
	return &Session{}
}

// Current returns the signed-in user, if any.
func (s *Session) Current() (*entity.User, bool) {
	if s.user == nil {
		return nil, false
	}

	return s.user, true
}

// UserID returns the signed-in user's ID, if any.
func (s *Session) UserID() (uuid.UUID, bool) {
	if s.user == nil {
		return uuid.Nil, false
	}

	return s.user.ID, true
}

// Set replaces any existing identity.
func (s *Session) Set(user *entity.User) {
	s.user = user
}

// Clear signs out. Clearing an anonymous session is a no-op.
func (s *Session) Clear() {
	s.user = nil
}
