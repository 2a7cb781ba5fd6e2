// Package common defines shared constants and sentinel errors used across
// the authentication core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors.
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidAccessCodeFormat = errors.New("invalid access code format")
	ErrInvalidPinFormat        = errors.New("invalid PIN format")

	// Authentication errors.
	ErrInvalidPin             = errors.New("invalid PIN")
	ErrAccessCodeNotFound     = errors.New("access code not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)

var expectedErrors = []error{
	ErrInvalidEmailFormat,
	ErrInvalidAccessCodeFormat,
	ErrInvalidPinFormat,
	ErrInvalidPin,
	ErrAccessCodeNotFound,
	ErrEmailAlreadyRegistered,
}

// IsExpected reports whether err belongs to the expected validation or
// authentication failure taxonomy. Anything outside it is an unexpected
// fault and should be surfaced generically.
func IsExpected(err error) bool {
	for _, e := range expectedErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
