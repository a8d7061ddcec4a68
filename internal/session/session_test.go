package session

import (
	"testing"

	"productsmanager/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSession_Lifecycle(t *testing.T) {
	s := New()

	_, ok := s.Current()
	assert.False(t, ok)
	id, ok := s.UserID()
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)

	alice := &entity.User{ID: uuid.New(), Username: "alice"}
	s.Set(alice)

	got, ok := s.Current()
	assert.True(t, ok)
	assert.Same(t, alice, got)
	id, ok = s.UserID()
	assert.True(t, ok)
	assert.Equal(t, alice.ID, id)

	bob := &entity.User{ID: uuid.New(), Username: "bob"}
	s.Set(bob)
	got, _ = s.Current()
	assert.Same(t, bob, got)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}
