// Package services contains the application services of the auth client.
// This file defines the authentication service: email+PIN login, access-code
// login, registration, anonymous registration, and PIN verification against
// the local credential store. The backend is simulated: every operation
// sleeps for a configured delay to model a network round-trip, and PIN
// delivery is replaced by issuing the PIN locally.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pinauth/internal/common"
	"github.com/dmitrijs2005/pinauth/internal/config"
	"github.com/dmitrijs2005/pinauth/internal/logging"
	"github.com/dmitrijs2005/pinauth/internal/models"
	"github.com/dmitrijs2005/pinauth/internal/pin"
	"github.com/dmitrijs2005/pinauth/internal/store"
	"github.com/dmitrijs2005/pinauth/internal/validation"
)

// Messages returned to the presentation layer alongside successful results.
const (
	MsgPinSent    = "PIN sent to your email"
	MsgNewPinSent = "New PIN sent to your email"
)

// AuthService defines the authentication operations consumed by the session
// manager.
//
// Contract:
//   - Expected failures (malformed input, unknown access code, wrong PIN,
//     already-registered email) are returned as sentinel errors from the
//     common package; match them with errors.Is.
//   - Any other error is an unexpected fault.
//   - All methods honor context cancellation during the simulated latency.
type AuthService interface {
	// LoginWithEmail validates the email and dispatches a login PIN.
	// No user record is created or required at this step.
	LoginWithEmail(ctx context.Context, email string) (string, error)

	// LoginWithCode authenticates by 16-digit access code and returns the
	// matching record.
	LoginWithCode(ctx context.Context, code string) (*models.User, error)

	// Register validates the email, rejects ones that already have a record,
	// and dispatches a registration PIN. The record itself is created by
	// VerifyPin.
	Register(ctx context.Context, email string) (string, error)

	// RegisterAnonymous creates a record identified by a fresh 16-digit
	// access code and returns the code.
	RegisterAnonymous(ctx context.Context) (string, error)

	// VerifyPin checks the PIN dispatched to email and returns the user
	// record, creating it on first verification.
	VerifyPin(ctx context.Context, pinCode, email string) (*models.User, error)

	// ResendPin dispatches a fresh PIN to the email.
	ResendPin(ctx context.Context, email string) (string, error)
}

type authService struct {
	users *store.UserStore
	pins  *pin.Issuer
	log   logging.Logger

	apiDelay      time.Duration
	testPin       string
	acceptTestPin bool
}

// NewAuthService constructs an AuthService bound to the given credential
// store and PIN issuer.
func NewAuthService(users *store.UserStore, pins *pin.Issuer, cfg *config.Config, log logging.Logger) AuthService {
	return &authService{
		users:         users,
		pins:          pins,
		log:           log,
		apiDelay:      cfg.APIDelay,
		testPin:       cfg.TestPin,
		acceptTestPin: cfg.AcceptTestPin,
	}
}

// simulateLatency models the network round-trip of a real backend call.
func (a *authService) simulateLatency(ctx context.Context) error {
	if a.apiDelay <= 0 {
		return nil
	}
	t := time.NewTimer(a.apiDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatchPin issues a PIN for the email. Delivery is simulated: the PIN
// never leaves the process except through the debug log.
func (a *authService) dispatchPin(ctx context.Context, email string) error {
	code, err := a.pins.Issue(ctx, email)
	if err != nil {
		return err
	}
	a.log.Debug(ctx, "PIN dispatched (simulated delivery)", "email", email, "pin", code)
	return nil
}

func (a *authService) LoginWithEmail(ctx context.Context, email string) (string, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return "", err
	}
	if !validation.IsValidEmail(email) {
		return "", common.ErrInvalidEmailFormat
	}
	if err := a.dispatchPin(ctx, email); err != nil {
		return "", err
	}
	return MsgPinSent, nil
}

func (a *authService) LoginWithCode(ctx context.Context, code string) (*models.User, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return nil, err
	}
	if !validation.IsAccessCode(code) {
		return nil, common.ErrInvalidAccessCodeFormat
	}

	user, err := a.users.FindByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrAccessCodeNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *authService) Register(ctx context.Context, email string) (string, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return "", err
	}
	if !validation.IsValidEmail(email) {
		return "", common.ErrInvalidEmailFormat
	}

	// A record only exists after a prior successful VerifyPin, so registering
	// the same email twice without verification succeeds both times.
	_, err := a.users.FindByEmail(ctx, email)
	if err == nil {
		return "", common.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", err
	}

	if err := a.dispatchPin(ctx, email); err != nil {
		return "", err
	}
	return MsgPinSent, nil
}

func (a *authService) RegisterAnonymous(ctx context.Context) (string, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return "", err
	}

	user, err := a.users.CreateAnonymousUser(ctx)
	if err != nil {
		return "", fmt.Errorf("anonymous registration failed: %w", err)
	}
	a.log.Info(ctx, "anonymous user registered", "userID", user.ID)
	return user.AccessCode, nil
}

func (a *authService) VerifyPin(ctx context.Context, pinCode, email string) (*models.User, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return nil, err
	}
	if !validation.IsPin(pinCode) {
		return nil, common.ErrInvalidPinFormat
	}
	if !validation.IsValidEmail(email) {
		return nil, common.ErrInvalidEmailFormat
	}

	ok, err := a.pins.Verify(ctx, email, pinCode)
	if err != nil {
		return nil, err
	}
	if !ok && !(a.acceptTestPin && pinCode == a.testPin) {
		return nil, common.ErrInvalidPin
	}

	user, err := a.users.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authService) ResendPin(ctx context.Context, email string) (string, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return "", err
	}
	if !validation.IsValidEmail(email) {
		return "", common.ErrInvalidEmailFormat
	}
	if err := a.dispatchPin(ctx, email); err != nil {
		return "", err
	}
	return MsgNewPinSent, nil
}
