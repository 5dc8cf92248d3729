package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kosmp/BD-5-sem/internal/application/session"
)

func TestSession_Ciclo(t *testing.T) {
	s := session.New()
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.Authenticated())
	_, ok := s.UserID()
	assert.False(t, ok)

	s.Login(42)
	assert.True(t, s.Authenticated())
	id, ok := s.UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	s.Logout()
	assert.False(t, s.Authenticated())
	_, ok = s.UserID()
	assert.False(t, ok)

	s.Logout()
	assert.False(t, s.Authenticated(), "logout repetido no falla")
}

func TestSession_IDsDistintos(t *testing.T) {
	assert.NotEqual(t, session.New().ID(), session.New().ID())
}
