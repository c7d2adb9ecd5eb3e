package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Stepheeeen/impressa/internal/entity"
)

func TestLogin_StoresSessionAndNotifies(t *testing.T) {
	sessions := &mockSessionStore{}
	events := &mockAuthEvents{}
	a := NewAuthenticator(&mockAuthAPI{token: "tok", user: domain.User{Email: "ada@impressa.com"}}, sessions, events)

	user, err := a.Login(context.Background(), "sid-1", "ada@impressa.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ada@impressa.com", user.Email)
	assert.True(t, sessions.authSaved)
	assert.Equal(t, []string{"sid-1"}, events.published)
}

func TestLogin_BackendRejection(t *testing.T) {
	sessions := &mockSessionStore{}
	events := &mockAuthEvents{}
	a := NewAuthenticator(&mockAuthAPI{loginErr: errors.New("invalid credentials")}, sessions, events)

	_, err := a.Login(context.Background(), "sid-1", "ada@impressa.com", "wrong")
	assert.Error(t, err)
	assert.False(t, sessions.authSaved)
	assert.Empty(t, events.published)
}

func TestLogout_ClearsAndNotifies(t *testing.T) {
	sessions := authedSession()
	events := &mockAuthEvents{}
	a := NewAuthenticator(&mockAuthAPI{}, sessions, events)

	require.NoError(t, a.Logout(context.Background(), "sid-1"))
	assert.True(t, sessions.cleared)
	assert.False(t, sessions.sess.Authenticated())
	assert.Equal(t, []string{"sid-1"}, events.published)
}
