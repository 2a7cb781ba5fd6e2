package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/pinauth/internal/auth"
	"github.com/dmitrijs2005/pinauth/internal/common"
	"github.com/dmitrijs2005/pinauth/internal/config"
	"github.com/dmitrijs2005/pinauth/internal/logging"
	"github.com/dmitrijs2005/pinauth/internal/models"
	"github.com/dmitrijs2005/pinauth/internal/pin"
	"github.com/dmitrijs2005/pinauth/internal/repositories/metadata"
	"github.com/dmitrijs2005/pinauth/internal/services"
	"github.com/dmitrijs2005/pinauth/internal/store"
	"github.com/stretchr/testify/require"
)

// newManager wires a Manager over an in-memory repository with no simulated
// latency. The repository is shared with the credential store, mirroring the
// single local database of the real client.
func newManager(t *testing.T) (*Manager, metadata.Repository) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIDelay = 0

	repo := metadata.NewInMemoryRepository()
	users := store.NewUserStore(repo, logging.Nop{})
	pins := pin.NewIssuer(repo, cfg.PinTTL)
	svc := services.NewAuthService(users, pins, cfg, logging.Nop{})
	return NewManager(context.Background(), svc, repo, cfg, logging.Nop{}), repo
}

func TestNewManager_NoPersistedSession(t *testing.T) {
	m, _ := newManager(t)
	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.User())
	require.False(t, m.IsLoading())
	require.Empty(t, m.Err())
	require.Empty(t, m.AccessToken())
}

func TestLogin_EmailPath_DoesNotAuthenticate(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	ok := m.Login(ctx, "user@example.com")
	require.True(t, ok)
	// PIN dispatched, but the session stays unauthenticated until VerifyPin
	require.False(t, m.IsAuthenticated())
	require.Empty(t, m.Err())
}

func TestLogin_EmailPath_InvalidFormat(t *testing.T) {
	m, _ := newManager(t)

	ok := m.Login(context.Background(), "bad@email")
	require.False(t, ok)
	require.Equal(t, "Invalid email format", m.Err())
	require.False(t, m.IsAuthenticated())
}

func TestLogin_CodePath(t *testing.T) {
	m, repo := newManager(t)
	ctx := context.Background()

	code := m.RegisterAnonymous(ctx)
	require.NotEmpty(t, code)
	// anonymous registration alone does not authenticate
	require.False(t, m.IsAuthenticated())

	ok := m.Login(ctx, code)
	require.True(t, ok)
	require.True(t, m.IsAuthenticated())
	require.Equal(t, code, m.User().AccessCode)
	require.NotEmpty(t, m.AccessToken())

	// the session was persisted
	raw, err := repo.Get(ctx, SessionKey)
	require.NoError(t, err)
	var u models.User
	require.NoError(t, json.Unmarshal(raw, &u))
	require.Equal(t, code, u.AccessCode)
}

func TestLogin_CodePath_UnknownCode(t *testing.T) {
	m, _ := newManager(t)

	ok := m.Login(context.Background(), "0000000000000000")
	require.False(t, ok)
	require.Equal(t, "Invalid access code", m.Err())
	require.False(t, m.IsAuthenticated())
}

func TestLogin_CodePath_BadFormat(t *testing.T) {
	m, _ := newManager(t)

	ok := m.Login(context.Background(), "123")
	require.False(t, ok)
	require.Equal(t, "Invalid access code format. Must be 16 digits.", m.Err())
}

func TestVerifyPin_Authenticates(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	ok := m.VerifyPin(ctx, "123456", "user@example.com")
	require.True(t, ok)
	require.True(t, m.IsAuthenticated())
	require.Equal(t, "user@example.com", m.User().Email)
	require.NotEmpty(t, m.AccessToken())
}

func TestVerifyPin_WrongPin(t *testing.T) {
	m, _ := newManager(t)

	ok := m.VerifyPin(context.Background(), "000001", "user@example.com")
	require.False(t, ok)
	require.Equal(t, "Invalid PIN", m.Err())
	require.False(t, m.IsAuthenticated())
}

func TestErrorClearedOnNextAttempt(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	require.False(t, m.Login(ctx, "bad@email"))
	require.NotEmpty(t, m.Err())

	require.True(t, m.Login(ctx, "user@example.com"))
	require.Empty(t, m.Err())
}

func TestClearError(t *testing.T) {
	m, _ := newManager(t)

	m.Login(context.Background(), "bad@email")
	require.NotEmpty(t, m.Err())

	m.ClearError()
	require.Empty(t, m.Err())
	require.False(t, m.IsAuthenticated())
}

func TestRegister_ThenVerify(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	require.True(t, m.Register(ctx, "new@example.com"))
	require.False(t, m.IsAuthenticated())

	require.True(t, m.VerifyPin(ctx, "123456", "new@example.com"))
	require.True(t, m.IsAuthenticated())

	// registering the same email again is now rejected
	require.False(t, m.Register(ctx, "new@example.com"))
	require.Equal(t, "Email already registered", m.Err())
}

func TestLogout_ClearsEverything(t *testing.T) {
	m, repo := newManager(t)
	ctx := context.Background()

	require.True(t, m.VerifyPin(ctx, "123456", "user@example.com"))
	require.True(t, m.IsAuthenticated())

	m.Logout(ctx)
	require.False(t, m.IsAuthenticated())
	require.Nil(t, m.User())
	require.Empty(t, m.AccessToken())

	_, err := repo.Get(ctx, SessionKey)
	require.ErrorIs(t, err, common.ErrNotFound)

	// idempotent
	m.Logout(ctx)
	require.False(t, m.IsAuthenticated())
}

func TestRestore_RoundTrip(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIDelay = 0

	repo := metadata.NewInMemoryRepository()
	users := store.NewUserStore(repo, logging.Nop{})
	pins := pin.NewIssuer(repo, cfg.PinTTL)
	svc := services.NewAuthService(users, pins, cfg, logging.Nop{})
	ctx := context.Background()

	first := NewManager(ctx, svc, repo, cfg, logging.Nop{})
	require.True(t, first.VerifyPin(ctx, "123456", "user@example.com"))
	want := first.User()

	// a fresh manager over the same repository restores the session
	second := NewManager(ctx, svc, repo, cfg, logging.Nop{})
	require.True(t, second.IsAuthenticated())
	require.Equal(t, want, second.User())

	// the minted token identifies the same user
	userID, err := auth.GetUserIDFromToken(second.AccessToken(), []byte(cfg.SecretKey))
	require.NoError(t, err)
	require.Equal(t, want.ID, userID)
}

func TestRestore_CorruptRecordDiscarded(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIDelay = 0

	repo := metadata.NewInMemoryRepository()
	users := store.NewUserStore(repo, logging.Nop{})
	pins := pin.NewIssuer(repo, cfg.PinTTL)
	svc := services.NewAuthService(users, pins, cfg, logging.Nop{})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, SessionKey, []byte("{broken")))

	m := NewManager(ctx, svc, repo, cfg, logging.Nop{})
	require.False(t, m.IsAuthenticated())

	// the corrupt record was deleted
	_, err := repo.Get(ctx, SessionKey)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestIsLoading_FalseAfterOperations(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	m.Login(ctx, "user@example.com")
	require.False(t, m.IsLoading())

	m.Login(ctx, "bad@email")
	require.False(t, m.IsLoading())
}
