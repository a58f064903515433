package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wodash/internal/config"
	"wodash/internal/session"
)

func newGate(t *testing.T, cfg config.AuthConfig) (*AuthService, *session.Store) {
	t.Helper()
	store := session.NewStore()
	return NewAuthService(cfg, store, nil), store
}

func TestAuthService_LoginPlaintext(t *testing.T) {
	gate, store := newGate(t, config.AuthConfig{Username: "admin", Password: "s3cret"})

	sess, err := gate.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, 1, store.Len())
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	gate, store := newGate(t, config.AuthConfig{Username: "admin", Password: "s3cret"})

	for _, tc := range []struct{ user, pass string }{
		{"admin", "wrong"},
		{"intruder", "s3cret"},
		{"", ""},
	} {
		_, err := gate.Login(context.Background(), tc.user, tc.pass)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_LoginBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	gate, _ := newGate(t, config.AuthConfig{
		Username:     "admin",
		Password:     "ignored-plaintext",
		PasswordHash: string(hash),
	})

	_, err = gate.Login(context.Background(), "admin", "hunter2")
	assert.NoError(t, err)

	_, err = gate.Login(context.Background(), "admin", "ignored-plaintext")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AuthenticateAndLogout(t *testing.T) {
	gate, _ := newGate(t, config.AuthConfig{Username: "admin", Password: "pw"})

	sess, err := gate.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)

	got, ok := gate.Authenticate(sess.Token)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = gate.Authenticate("")
	assert.False(t, ok)

	gate.Logout(context.Background(), sess.Token)
	_, ok = gate.Authenticate(sess.Token)
	assert.False(t, ok)
}
