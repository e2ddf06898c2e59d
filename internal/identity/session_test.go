package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haunguyen/shopfront/internal/storage/mem"
)

func TestNewSession_StartsAsGuest(t *testing.T) {
	s := NewSession(mem.New())

	assert.False(t, s.IsAuthenticated())
	_, ok := s.CurrentUserID()
	assert.False(t, ok)
	assert.Empty(t, s.Token())
}

func TestLogin(t *testing.T) {
	s := NewSession(mem.New())
	require.NoError(t, s.Login("u1", "tok"))

	assert.True(t, s.IsAuthenticated())
	uid, ok := s.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, "tok", s.Token())
}

func TestLogin_RequiresUserID(t *testing.T) {
	s := NewSession(mem.New())
	require.Error(t, s.Login("", "tok"))
	assert.False(t, s.IsAuthenticated())
}

func TestSession_SurvivesRestart(t *testing.T) {
	backend := mem.New()
	require.NoError(t, NewSession(backend).Login("u1", "tok"))

	restored := NewSession(backend)
	assert.True(t, restored.IsAuthenticated())
	uid, _ := restored.CurrentUserID()
	assert.Equal(t, "u1", uid)
	assert.Equal(t, "tok", restored.Token())
}

func TestLogout(t *testing.T) {
	backend := mem.New()
	s := NewSession(backend)
	require.NoError(t, s.Login("u1", "tok"))
	require.NoError(t, s.Logout())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())

	// The cleared session does not come back after a restart.
	assert.False(t, NewSession(backend).IsAuthenticated())
}

func TestNewSession_CorruptValueStartsAsGuest(t *testing.T) {
	backend := mem.New()
	require.NoError(t, backend.Write(SessionKey, []byte("not json")))

	assert.False(t, NewSession(backend).IsAuthenticated())
}

func TestNewSession_TokenWithoutUserIgnored(t *testing.T) {
	backend := mem.New()
	require.NoError(t, backend.Write(SessionKey, []byte(`{"token":"orphan"}`)))

	s := NewSession(backend)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}
