// Package pin issues and verifies short-lived one-time PINs. A PIN is bound
// to an email address, stored as a salted argon2id digest with an expiry,
// and consumed on first successful verification.
package pin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pinauth/internal/common"
	"github.com/dmitrijs2005/pinauth/internal/cryptox"
	"github.com/dmitrijs2005/pinauth/internal/repositories/metadata"
)

// Length is the number of digits in an issued PIN.
const Length = 6

const keyPrefix = "pin:"

type issuedPin struct {
	Hash      []byte `json:"hash"`
	Salt      []byte `json:"salt"`
	ExpiresAt int64  `json:"expiresAt"`
}

type Issuer struct {
	repo metadata.Repository
	ttl  time.Duration

	// now is a test seam for expiry checks.
	now func() time.Time
}

func NewIssuer(repo metadata.Repository, ttl time.Duration) *Issuer {
	return &Issuer{repo: repo, ttl: ttl, now: time.Now}
}

// Issue generates a fresh PIN for the email, replacing any previously issued
// one, and returns the cleartext for delivery. Only the digest is stored.
func (i *Issuer) Issue(ctx context.Context, email string) (string, error) {
	code, err := common.GenerateRandDigits(Length)
	if err != nil {
		return "", fmt.Errorf("failed to generate PIN: %w", err)
	}

	salt := common.GenerateRandByteArray(16)
	rec := issuedPin{
		Hash:      cryptox.HashPin(code, salt),
		Salt:      salt,
		ExpiresAt: i.now().Add(i.ttl).UnixMilli(),
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to serialize PIN record: %w", err)
	}
	if err := i.repo.Set(ctx, keyPrefix+email, raw); err != nil {
		return "", fmt.Errorf("failed to store PIN record: %w", err)
	}
	return code, nil
}

// Verify reports whether pin matches the unexpired PIN issued for email.
// A matching PIN is consumed and cannot be used again; an expired record is
// dropped. Absent, expired, corrupt, or mismatching records all verify false.
func (i *Issuer) Verify(ctx context.Context, email, pin string) (bool, error) {
	key := keyPrefix + email

	raw, err := i.repo.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load PIN record: %w", err)
	}

	var rec issuedPin
	if err := json.Unmarshal(raw, &rec); err != nil {
		return false, nil
	}

	if i.now().UnixMilli() > rec.ExpiresAt {
		_ = i.repo.Delete(ctx, key)
		return false, nil
	}

	if !cryptox.CheckPin(rec.Hash, pin, rec.Salt) {
		return false, nil
	}

	if err := i.repo.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("failed to consume PIN record: %w", err)
	}
	return true, nil
}
