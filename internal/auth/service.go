// internal/auth/service.go
//
// Account registration and credential checks.
//
// Context
// -------
// Register validates input with go-playground/validator, derives an
// argon2id key with a fresh salt, and inserts the user; the store enforces
// unique usernames.  Authenticate compares in constant time and burns one
// hash for unknown usernames so response timing does not reveal which
// accounts exist.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/folio/internal/store"
)

var (
	// ErrInvalidCredentials covers unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("auth: invalid username or password")

	// ErrUsernameTaken is returned by Register for duplicate usernames.
	ErrUsernameTaken = errors.New("auth: username already taken")
)

// Registration is the register form after namespacing is stripped.
type Registration struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=256"`
	UserType string `validate:"max=32"`
}

// ValidationError wraps a failed Registration check with a message fit for
// the register page.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Service owns the account operations.
type Service struct {
	users    store.UserStore
	hasher   Hasher
	validate *validator.Validate

	dummyOnce sync.Once
	dummyHash string
	dummySalt string
}

// NewService builds a Service over users.  A zero Hasher uses the defaults.
func NewService(users store.UserStore, h Hasher) *Service {
	return &Service{users: users, hasher: h, validate: validator.New()}
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, reg Registration) (*store.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	if err := s.validate.Struct(reg); err != nil {
		return nil, describe(err)
	}

	hash, salt, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}
	u := &store.User{
		Username: reg.Username,
		Hash:     hash,
		Salt:     salt,
		UserType: reg.UserType,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("auth: register: %w", err)
	}
	return u, nil
}

// Authenticate returns the user when password matches.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*store.User, error) {
	u, err := s.users.ByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		s.burn(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth: lookup: %w", err)
	}
	if !s.hasher.Verify(password, u.Hash, u.Salt) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// burn spends one verification on a throwaway hash.
func (s *Service) burn(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, s.dummySalt, _ = s.hasher.Hash("folio-dummy-password")
	})
	_ = s.hasher.Verify(password, s.dummyHash, s.dummySalt)
}

// describe turns validator output into one readable sentence.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Msg: "Invalid registration."}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Msg: fe.Field() + " is required."}
	case "max":
		return &ValidationError{Msg: fe.Field() + " is too long."}
	}
	return &ValidationError{Msg: fe.Field() + " is invalid."}
}
