package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@domain", false},
		{"user@@example.com", false},
		{"us er@example.com", false},
		{"user@exa mple.com", false},
		{"1234567890123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, IsValidEmail(tt.in))
		})
	}
}

func TestIsAccessCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1234567890123456", true},
		{"0000000000000000", true},
		{"123456789012345", false},
		{"12345678901234567", false},
		{"123456789012345a", false},
		{"1234 567890123456", false},
		{"", false},
		{"user@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, IsAccessCode(tt.in))
		})
	}
}

func TestIsPin(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12345a", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, IsPin(tt.in))
		})
	}
}

// An email always contains @, an access code never does, so the two
// classifications cannot both hold for the same input.
func TestEmailAndAccessCodeAreMutuallyExclusive(t *testing.T) {
	inputs := []string{
		"user@example.com",
		"1234567890123456",
		"",
		"abc",
		"1234@567890123456.77",
	}
	for _, in := range inputs {
		if IsAccessCode(in) {
			require.False(t, strings.Contains(in, "@"))
			require.False(t, IsValidEmail(in))
		}
		if IsValidEmail(in) {
			require.False(t, IsAccessCode(in))
		}
	}
}
