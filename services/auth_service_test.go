package services

import (
	"context"
	"testing"

	"dugun.site/models"
	"dugun.site/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T, seed bool) *AuthService {
	t.Helper()
	repo := repositories.NewOperatorRepository(openTestDB(t))
	if seed {
		hash, err := HashPassword("s3cret")
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), &models.Operator{Email: "admin@example.com", PasswordHash: hash}))
	}
	return NewAuthService(repo, " Admin@Example.com ", 0.001, 3)
}

func TestLoginSuccessEmitsSessionEvent(t *testing.T) {
	auth := newTestAuth(t, true)
	var events []SessionEvent
	unsub := auth.OnSessionChange(func(ev SessionEvent) { events = append(events, ev) })
	defer unsub()

	op, err := auth.Login(context.Background(), "10.0.0.1", "sess-1", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", op.Email)
	require.Len(t, events, 1)
	assert.Equal(t, SessionEvent{Kind: SessionLogin, SessionID: "sess-1", Email: "admin@example.com"}, events[0])

	auth.Logout("sess-1", op.Email)
	auth.Restore("sess-2", op.Email)
	require.Len(t, events, 3)
	assert.Equal(t, SessionLogout, events[1].Kind)
	assert.Equal(t, SessionRestore, events[2].Kind)
}

func TestLoginErrors(t *testing.T) {
	auth := newTestAuth(t, true)
	_, err := auth.Login(context.Background(), "10.0.0.2", "s", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.Equal(t, "Incorrect password", LoginErrorMessage(err))

	missing := newTestAuth(t, false)
	_, err = missing.Login(context.Background(), "10.0.0.2", "s", "s3cret")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, "Admin account not configured", LoginErrorMessage(err))
}

func TestLoginThrottlesPerClient(t *testing.T) {
	auth := newTestAuth(t, true)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := auth.Login(ctx, "10.0.0.3", "s", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredential)
	}
	_, err := auth.Login(ctx, "10.0.0.3", "s", "s3cret")
	assert.ErrorIs(t, err, ErrTooManyRequests)
	assert.Equal(t, "Too many failed attempts. Try again later.", LoginErrorMessage(err))

	_, err = auth.Login(ctx, "10.0.0.4", "s", "s3cret")
	assert.NoError(t, err, "other clients are not throttled")
}

func TestLoginErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "Authentication failed. Please try again.", LoginErrorMessage(ErrAuthFailed))
	assert.Equal(t, "Authentication failed. Please try again.", LoginErrorMessage(errRemoteDown))
}
