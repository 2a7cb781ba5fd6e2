// Package validation contains pure predicates classifying raw credential
// input. The service layer re-validates with these same predicates and never
// trusts the caller's pre-validation.
package validation

import "regexp"

var (
	emailRegexp      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	accessCodeRegexp = regexp.MustCompile(`^[0-9]{16}$`)
	pinRegexp        = regexp.MustCompile(`^[0-9]{6}$`)
)

// IsValidEmail reports whether s is shaped like local@domain.tld: no
// whitespace, exactly one @, and at least one dot after the @.
func IsValidEmail(s string) bool {
	return emailRegexp.MatchString(s)
}

// IsAccessCode reports whether s is exactly 16 ASCII decimal digits.
// An access code can never satisfy IsValidEmail and vice versa.
func IsAccessCode(s string) bool {
	return accessCodeRegexp.MatchString(s)
}

// IsPin reports whether s is exactly 6 ASCII decimal digits.
func IsPin(s string) bool {
	return pinRegexp.MatchString(s)
}
