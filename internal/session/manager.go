// Package session owns the client's authentication state: the current user,
// the derived authenticated flag, and the transient loading/error status the
// presentation layer renders. The session survives restarts through the
// metadata repository and is restored at construction.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pinauth/internal/auth"
	"github.com/dmitrijs2005/pinauth/internal/common"
	"github.com/dmitrijs2005/pinauth/internal/config"
	"github.com/dmitrijs2005/pinauth/internal/logging"
	"github.com/dmitrijs2005/pinauth/internal/models"
	"github.com/dmitrijs2005/pinauth/internal/repositories/metadata"
	"github.com/dmitrijs2005/pinauth/internal/services"
)

// SessionKey is the metadata key holding the serialized current user.
const SessionKey = "currentUser"

// genericErrorMessage is shown when an operation fails outside the expected
// validation/authentication taxonomy.
const genericErrorMessage = "An unexpected error occurred"

// Manager is the explicit session object handed to the presentation layer.
// There is no package-level singleton: construct one with NewManager and
// pass it to whatever needs it.
//
// Mutating operations are serialized by an operation mutex; the observable
// state (user, loading, error) is guarded separately so readers never block
// behind an in-flight operation's simulated latency.
type Manager struct {
	opMu sync.Mutex
	mu   sync.Mutex

	svc      services.AuthService
	sessions metadata.Repository
	log      logging.Logger

	secretKey     []byte
	tokenValidity time.Duration

	user    *models.User
	token   string
	loading bool
	errMsg  string
}

// NewManager constructs a Manager and restores a previously persisted
// session, if any. A corrupt persisted record is discarded and deleted.
func NewManager(ctx context.Context, svc services.AuthService, sessions metadata.Repository, cfg *config.Config, log logging.Logger) *Manager {
	m := &Manager{
		svc:           svc,
		sessions:      sessions,
		log:           log,
		secretKey:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
	}
	m.restore(ctx)
	return m
}

func (m *Manager) restore(ctx context.Context) {
	raw, err := m.sessions.Get(ctx, SessionKey)
	if errors.Is(err, common.ErrNotFound) {
		return
	}
	if err != nil {
		m.log.Error(ctx, "failed to read persisted session", "error", err)
		return
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		m.log.Warn(ctx, "discarding corrupt persisted session", "error", err)
		_ = m.sessions.Delete(ctx, SessionKey)
		return
	}

	m.mu.Lock()
	m.user = &u
	m.token = m.mintToken(ctx, u.ID)
	m.mu.Unlock()
	m.log.Info(ctx, "session restored", "userID", u.ID)
}

// begin marks an operation in flight and clears the previous error.
func (m *Manager) begin() {
	m.mu.Lock()
	m.loading = true
	m.errMsg = ""
	m.mu.Unlock()
}

func (m *Manager) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// fail records the user-facing message for err. Unexpected faults are logged
// and surfaced generically; they never propagate to the caller.
func (m *Manager) fail(ctx context.Context, op string, err error) {
	msg := genericErrorMessage
	if common.IsExpected(err) {
		msg = messageFor(err)
	} else {
		m.log.Error(ctx, "auth operation failed", "op", op, "error", err)
	}
	m.mu.Lock()
	m.errMsg = msg
	m.mu.Unlock()
}

// authenticate installs user as the current session and persists it. A
// persistence failure is logged but does not undo the in-memory session.
func (m *Manager) authenticate(ctx context.Context, user *models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		m.log.Error(ctx, "failed to serialize session", "error", err)
	} else if err := m.sessions.Set(ctx, SessionKey, raw); err != nil {
		m.log.Error(ctx, "failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.user = user
	m.token = m.mintToken(ctx, user.ID)
	m.mu.Unlock()
	m.log.Info(ctx, "session authenticated", "userID", user.ID)
}

func (m *Manager) mintToken(ctx context.Context, userID string) string {
	token, err := auth.GenerateToken(userID, m.secretKey, m.tokenValidity)
	if err != nil {
		m.log.Error(ctx, "failed to mint access token", "error", err)
		return ""
	}
	return token
}

// Login authenticates with either an email or a 16-digit access code; input
// containing no @ is treated as a code. The email path only dispatches a PIN:
// it reports success while the session stays unauthenticated until VerifyPin.
// The code path authenticates immediately.
func (m *Manager) Login(ctx context.Context, emailOrCode string) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.begin()
	defer m.end()

	if strings.Contains(emailOrCode, "@") {
		if _, err := m.svc.LoginWithEmail(ctx, emailOrCode); err != nil {
			m.fail(ctx, "loginWithEmail", err)
			return false
		}
		return true
	}

	user, err := m.svc.LoginWithCode(ctx, emailOrCode)
	if err != nil {
		m.fail(ctx, "loginWithCode", err)
		return false
	}
	m.authenticate(ctx, user)
	return true
}

// VerifyPin completes an email login or registration. On success the session
// becomes authenticated and is persisted.
func (m *Manager) VerifyPin(ctx context.Context, pin, email string) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.begin()
	defer m.end()

	user, err := m.svc.VerifyPin(ctx, pin, email)
	if err != nil {
		m.fail(ctx, "verifyPin", err)
		return false
	}
	m.authenticate(ctx, user)
	return true
}

// Register starts an email registration by dispatching a PIN. The record is
// created by the following VerifyPin.
func (m *Manager) Register(ctx context.Context, email string) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.begin()
	defer m.end()

	if _, err := m.svc.Register(ctx, email); err != nil {
		m.fail(ctx, "register", err)
		return false
	}
	return true
}

// RegisterAnonymous creates an anonymous account and returns its access code
// for one-time display, or "" on failure. It does not authenticate: the
// caller logs in separately with the returned code.
func (m *Manager) RegisterAnonymous(ctx context.Context) string {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.begin()
	defer m.end()

	code, err := m.svc.RegisterAnonymous(ctx)
	if err != nil {
		m.fail(ctx, "registerAnonymous", err)
		return ""
	}
	return code
}

// ResendPin dispatches a fresh PIN for the email.
func (m *Manager) ResendPin(ctx context.Context, email string) bool {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.begin()
	defer m.end()

	if _, err := m.svc.ResendPin(ctx, email); err != nil {
		m.fail(ctx, "resendPin", err)
		return false
	}
	return true
}

// Logout clears the in-memory user and the persisted session. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.sessions.Delete(ctx, SessionKey); err != nil {
		m.log.Error(ctx, "failed to clear persisted session", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.mu.Unlock()
	m.log.Info(ctx, "session cleared")
}

// ClearError clears the transient error without other state change.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.errMsg = ""
	m.mu.Unlock()
}

// User returns a copy of the current user, or nil when unauthenticated.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsLoading reports whether a mutating operation is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the message of the last failed operation, or "".
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// AccessToken returns the token minted for the current session, or "" when
// unauthenticated.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// messageFor translates an expected failure into its user-facing message.
func messageFor(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidEmailFormat):
		return "Invalid email format"
	case errors.Is(err, common.ErrInvalidAccessCodeFormat):
		return "Invalid access code format. Must be 16 digits."
	case errors.Is(err, common.ErrInvalidPinFormat):
		return "Invalid PIN format"
	case errors.Is(err, common.ErrInvalidPin):
		return "Invalid PIN"
	case errors.Is(err, common.ErrAccessCodeNotFound):
		return "Invalid access code"
	case errors.Is(err, common.ErrEmailAlreadyRegistered):
		return "Email already registered"
	default:
		return genericErrorMessage
	}
}
