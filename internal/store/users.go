// Package store implements the credential store: an append-only collection
// of user records serialized as a single JSON blob in the metadata
// repository, under the same key and wire format the original client used.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pinauth/internal/common"
	"github.com/dmitrijs2005/pinauth/internal/logging"
	"github.com/dmitrijs2005/pinauth/internal/models"
	"github.com/dmitrijs2005/pinauth/internal/repositories/metadata"
)

// UsersKey is the metadata key holding the serialized credential collection.
const UsersKey = "authUsers"

// codeRetries bounds regeneration attempts when a fresh access code collides
// with an existing record.
const codeRetries = 5

type UserStore struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewUserStore(repo metadata.Repository, log logging.Logger) *UserStore {
	return &UserStore{repo: repo, log: log}
}

// decode parses a serialized collection. A corrupt blob is logged and treated
// as an empty collection, matching the store lifecycle: absent or corrupt
// means "no records yet".
func (s *UserStore) decode(ctx context.Context, raw []byte) []models.User {
	if len(raw) == 0 {
		return nil
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		s.log.Warn(ctx, "discarding corrupt credential collection", "error", err)
		return nil
	}
	return users
}

// List returns the full record collection in insertion order.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	raw, err := s.repo.Get(ctx, UsersKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return s.decode(ctx, raw), nil
}

// FindByEmail scans for a record with the given email.
// Returns common.ErrNotFound when no record matches.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

// FindByAccessCode scans for a record with the given access code.
// Returns common.ErrNotFound when no record matches.
func (s *UserStore) FindByAccessCode(ctx context.Context, code string) (*models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].AccessCode == code {
			u := users[i]
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

// FindOrCreateByEmail returns the record with the given email, creating and
// appending a fresh one when none exists. The lookup and the append run in a
// single repository update, so two concurrent calls cannot produce duplicate
// records for the same email.
func (s *UserStore) FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	var result *models.User

	err := s.repo.Update(ctx, UsersKey, func(current []byte) ([]byte, error) {
		users := s.decode(ctx, current)
		for i := range users {
			if users[i].Email == email {
				u := users[i]
				result = &u
				return current, nil
			}
		}
		u := models.NewEmailUser(email)
		result = u
		return json.Marshal(append(users, *u))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return result, nil
}

// CreateAnonymousUser generates a fresh 16-digit access code, appends a new
// record carrying it, and returns the record. Generation retries a bounded
// number of times when the code collides with an existing one.
func (s *UserStore) CreateAnonymousUser(ctx context.Context) (*models.User, error) {
	var result *models.User

	err := s.repo.Update(ctx, UsersKey, func(current []byte) ([]byte, error) {
		users := s.decode(ctx, current)

		for attempt := 0; attempt < codeRetries; attempt++ {
			code, err := common.GenerateRandDigits(16)
			if err != nil {
				return nil, err
			}
			if codeTaken(users, code) {
				continue
			}
			u := models.NewAnonymousUser(code)
			result = u
			return json.Marshal(append(users, *u))
		}
		return nil, fmt.Errorf("could not generate a unique access code: %w", common.ErrInternal)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return result, nil
}

func codeTaken(users []models.User, code string) bool {
	for i := range users {
		if users[i].AccessCode == code {
			return true
		}
	}
	return false
}
