// Package models defines the persisted credential record types.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a single identity record. Email is set for email-registered users,
// AccessCode for anonymously registered ones; at least one of the two is
// always present. Records are never mutated after creation.
//
// The JSON field names match the persisted wire format, so existing
// collections keep parsing across versions.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email,omitempty"`
	AccessCode string `json:"accessCode,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// NewEmailUser creates a record for an email-registered user with a fresh id
// and the current creation timestamp.
func NewEmailUser(email string) *User {
	return &User{ID: uuid.NewString(), Email: email, CreatedAt: NowMillis()}
}

// NewAnonymousUser creates a record for an anonymously registered user
// identified only by its 16-digit access code.
func NewAnonymousUser(accessCode string) *User {
	return &User{ID: uuid.NewString(), AccessCode: accessCode, CreatedAt: NowMillis()}
}

// NowMillis returns the current time in milliseconds since the Unix epoch,
// the unit used by CreatedAt.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
