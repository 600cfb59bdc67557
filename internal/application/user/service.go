package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/clock"
)

const minPasswordLen = 6

var (
	errUserNotFound = domain.Reason(domain.ErrNotFound, "User not found")
	errEmailInUse   = domain.Reason(domain.ErrConflict, "Email already in use")
)

// notFoundAsUser gives a vanished account the same answer on every profile call.
func notFoundAsUser(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, errUserNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Service reads, patches and deletes the caller's own account.
type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

type passwordHasher interface {
	Hash(plaintext string) (string, error)
}

// ServiceDeps wires a Service; Clock defaults to the system clock.
type ServiceDeps struct {
	Store     domain.CredentialStore
	Passwords passwordHasher
	Clock     clock.Clock
}

type service struct {
	store     domain.CredentialStore
	passwords passwordHasher
	clock     clock.Clock
}

// NewService builds a Service from deps.
func NewService(deps ServiceDeps) Service {
	c := deps.Clock
	if c == nil {
		c = clock.System{}
	}
	return &service{store: deps.Store, passwords: deps.Passwords, clock: c}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundAsUser("get profile", err)
	}
	return u, nil
}

// Update turns the request into a patch and applies it in one statement.
// Absent fields are untouched; an empty request is rejected.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	var patch domain.UserPatch

	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			return nil, domain.Reason(domain.ErrValidation, "Username must not be empty")
		}
		patch.Username = &name
	}
	if req.Email != nil {
		email := domain.NormalizeEmail(*req.Email)
		other, err := s.store.FindUserByEmail(ctx, email)
		switch {
		case err == nil && other.UserID != userID:
			return nil, errEmailInUse
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("update profile lookup: %w", err)
		}
		patch.Email = &email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return nil, domain.Reason(domain.ErrValidation, fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
		}
		h, err := s.passwords.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &h
	}
	if patch.Empty() {
		return nil, domain.Reason(domain.ErrValidation, "At least one field (username, email, password) must be provided")
	}

	if err := s.store.UpdateUser(ctx, userID, patch, s.clock.Now()); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("update profile: %w", errEmailInUse)
		}
		return nil, notFoundAsUser("update profile", err)
	}
	return s.Get(ctx, userID)
}

// Delete removes the account together with every pending code addressed to it.
func (s *service) Delete(ctx context.Context, userID string) error {
	return s.store.Atomic(ctx, func(ctx context.Context, tx domain.CredentialStore) error {
		u, err := tx.FindUserByID(ctx, userID)
		if err != nil {
			return notFoundAsUser("delete profile", err)
		}
		if err := tx.DeleteOtpsForUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.DeleteOtpsFor(ctx, u.Email); err != nil {
			return err
		}
		return tx.DeleteUser(ctx, userID)
	})
}
