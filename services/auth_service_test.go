package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planejaplus/config"
	"planejaplus/models"
	"planejaplus/storage"
)

func newTestAuth(t *testing.T) (*AuthService, *storage.Store, *config.Config) {
	t.Helper()
	store := newTestStore(t)
	cfg := &config.Config{
		Namespace: "test",
		JWTSecret: "test-secret",
	}
	auth := NewAuthService(store, cfg)
	return auth, store, cfg
}

// fixClock pins the service clock and returns a function that advances it.
func fixClock(s *AuthService, at time.Time) func(d time.Duration) {
	current := at
	s.now = func() time.Time { return current }
	return func(d time.Duration) { current = current.Add(d) }
}

func TestLoginDemoUser(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	user, token, err := auth.Login(context.Background(), "demo@planejaplus.com", "demo123", false)
	require.NoError(t, err)
	assert.Equal(t, models.DemoUser.ID, user.ID)
	assert.NotEmpty(t, token)

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, models.DemoUser.ID, current.ID)
}

func TestLoginIdentifierNormalization(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	_, _, err := auth.Login(context.Background(), "  Demo@PlanejaPlus.COM ", "demo123", false)
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	_, _, err := auth.Login(context.Background(), "demo@planejaplus.com", "nope", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(context.Background(), "nobody@planejaplus.com", "demo123", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := auth.CurrentUser()
	assert.False(t, ok)
}

func TestLoginLockout(t *testing.T) {
	auth, store, cfg := newTestAuth(t)
	advance := fixClock(auth, time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		_, _, err := auth.Login(ctx, "demo@planejaplus.com", "wrong", false)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Correct credentials are rejected while the lockout holds.
	assert.True(t, auth.IsBlocked())
	assert.Equal(t, lockoutCooldown, auth.BlockTimeRemaining())
	_, _, err := auth.Login(ctx, "demo@planejaplus.com", "demo123", false)
	assert.ErrorIs(t, err, ErrLoginBlocked)

	// The counter survives a process restart.
	reborn := NewAuthService(store, cfg)
	fixClock(reborn, auth.now())
	_, _, err = reborn.Login(ctx, "demo@planejaplus.com", "demo123", false)
	assert.ErrorIs(t, err, ErrLoginBlocked)

	advance(90 * time.Second)
	assert.True(t, auth.IsBlocked())
	assert.Equal(t, 30*time.Second, auth.BlockTimeRemaining())

	// Past the cool-down a correct login goes through and resets the counter.
	advance(31 * time.Second)
	assert.False(t, auth.IsBlocked())
	assert.Zero(t, auth.BlockTimeRemaining())
	_, _, err = auth.Login(ctx, "demo@planejaplus.com", "demo123", false)
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "demo@planejaplus.com", "wrong", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, auth.IsBlocked())
}

func TestLoginFailureWindowResetsStaleCount(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	advance := fixClock(auth, time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts-1; i++ {
		_, _, _ = auth.Login(ctx, "demo@planejaplus.com", "wrong", false)
	}

	// After the window lapses the stale failures no longer accumulate.
	advance(lockoutWindow + time.Second)
	_, _, err := auth.Login(ctx, "demo@planejaplus.com", "wrong", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, auth.IsBlocked())
}

func TestRememberMePersistsSession(t *testing.T) {
	auth, store, cfg := newTestAuth(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "demo@planejaplus.com", "demo123", true)
	require.NoError(t, err)

	reborn := NewAuthService(store, cfg)
	reborn.Hydrate()
	current, ok := reborn.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, models.DemoUser.ID, current.ID)
}

func TestNoRememberMeDropsSession(t *testing.T) {
	auth, store, cfg := newTestAuth(t)
	ctx := context.Background()

	// A remembered session from an earlier login is cleared by a plain one.
	_, _, err := auth.Login(ctx, "demo@planejaplus.com", "demo123", true)
	require.NoError(t, err)
	_, _, err = auth.Login(ctx, "demo@planejaplus.com", "demo123", false)
	require.NoError(t, err)

	reborn := NewAuthService(store, cfg)
	reborn.Hydrate()
	_, ok := reborn.CurrentUser()
	assert.False(t, ok)
}

func TestLogoutClearsSession(t *testing.T) {
	auth, store, cfg := newTestAuth(t)

	_, _, err := auth.Login(context.Background(), "demo@planejaplus.com", "demo123", true)
	require.NoError(t, err)

	auth.Logout()
	_, ok := auth.CurrentUser()
	assert.False(t, ok)

	reborn := NewAuthService(store, cfg)
	reborn.Hydrate()
	_, ok = reborn.CurrentUser()
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	auth, store, cfg := newTestAuth(t)
	ctx := context.Background()

	user, token, err := auth.Register(ctx, "Nova Pessoa", "Nova@Example.com ", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "nova@example.com", user.Email)
	assert.Equal(t, "member", user.Role)

	// Registration always persists the session.
	reborn := NewAuthService(store, cfg)
	reborn.Hydrate()
	current, ok := reborn.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.ID)

	// The new identity can log back in.
	got, _, err := auth.Login(ctx, "nova@example.com", "s3cret", false)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "Dup", "demo@planejaplus.com", "whatever")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = auth.Register(ctx, "First", "someone@example.com", "pw")
	require.NoError(t, err)
	_, _, err = auth.Register(ctx, "Second", "SOMEONE@example.com", "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSwitchToTestUser(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	target := models.TestUsers[1]
	user, token, err := auth.SwitchToTestUser(target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, user.ID)
	assert.NotEmpty(t, token)

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, target.ID, current.ID)

	_, _, err = auth.SwitchToTestUser(uuid.New())
	assert.ErrorIs(t, err, ErrUnknownTestUser)
}

func TestTestUsersSharePassword(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()

	for _, u := range models.TestUsers {
		got, _, err := auth.Login(ctx, u.Email, "teste123", false)
		require.NoError(t, err, "test user %s", u.Email)
		assert.Equal(t, u.ID, got.ID)
	}
}

func TestSimulatedLatencyRespectsCancellation(t *testing.T) {
	store := newTestStore(t)
	cfg := &config.Config{
		Namespace:        "test",
		JWTSecret:        "test-secret",
		SimulatedLatency: time.Minute,
	}
	auth := NewAuthService(store, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := auth.Login(ctx, "demo@planejaplus.com", "demo123", false)
	assert.ErrorIs(t, err, context.Canceled)
}
