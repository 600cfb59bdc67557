package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/student-records-api/internal/application/otp"
	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/clock"
	"github.com/student-records-api/internal/pkg/id"
)

// dummyPassword is hashed once at startup and compared against on unknown-email
// logins so both failure paths pay for one bcrypt comparison.
const dummyPassword = "not-a-real-password"

var (
	errEmailTaken    = domain.Reason(domain.ErrConflict, "Email already registered")
	errEmailNotFound = domain.Reason(domain.ErrNotFound, "Email not found")
)

// Service runs signup, login and password reset for email accounts.
type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) error
	VerifyAndRegister(ctx context.Context, req domain.VerifySignupRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
}

type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(hashed, plaintext string) bool
}

type tokenSigner interface {
	Sign(userID string) (string, error)
}

type otpAuthenticator interface {
	Issue(ctx context.Context, email string, userID *string) error
	Consume(ctx context.Context, email, code string, mutate otp.Mutation) error
}

// ServiceDeps wires a Service; Clock defaults to the system clock.
type ServiceDeps struct {
	Store     domain.CredentialStore
	OTP       otpAuthenticator
	Passwords passwordHasher
	Tokens    tokenSigner
	Clock     clock.Clock
}

type service struct {
	store     domain.CredentialStore
	otp       otpAuthenticator
	passwords passwordHasher
	tokens    tokenSigner
	clock     clock.Clock
	dummyHash string
}

// NewService builds a Service. It fails only if the dummy login hash cannot be computed.
func NewService(deps ServiceDeps) (Service, error) {
	dummy, err := deps.Passwords.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	c := deps.Clock
	if c == nil {
		c = clock.System{}
	}
	return &service{
		store:     deps.Store,
		otp:       deps.OTP,
		passwords: deps.Passwords,
		tokens:    deps.Tokens,
		clock:     c,
		dummyHash: dummy,
	}, nil
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) error {
	email := domain.NormalizeEmail(req.Email)
	_, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return errEmailTaken
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("signup lookup: %w", err)
	}
	return s.otp.Issue(ctx, email, nil)
}

// VerifyAndRegister creates the user only if the code is valid, inside the
// transaction that consumes the code. The email is re-checked there because
// another request may have registered it while the code was pending.
func (s *service) VerifyAndRegister(ctx context.Context, req domain.VerifySignupRequest) (*domain.User, error) {
	email := domain.NormalizeEmail(req.Email)
	passwordHash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now()
	u := &domain.User{
		UserID:       id.New(),
		Username:     req.Username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.otp.Consume(ctx, email, req.OTP, func(ctx context.Context, tx domain.CredentialStore) error {
		_, err := tx.FindUserByEmail(ctx, email)
		if err == nil {
			return errEmailTaken
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return tx.InsertUser(ctx, u)
	})
	if errors.Is(err, domain.ErrConflict) {
		// users_email_key decides races the in-transaction check cannot see.
		return nil, fmt.Errorf("register %s: %w", email, errEmailTaken)
	}
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user registered", "user_id", u.UserID)
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	email := domain.NormalizeEmail(req.Email)
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("login lookup: %w", err)
		}
		s.passwords.Verify(s.dummyHash, req.Password)
		return "", nil, domain.ErrInvalidCredentials
	}
	if !s.passwords.Verify(u.PasswordHash, req.Password) {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Sign(u.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

func (s *service) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	email := domain.NormalizeEmail(req.Email)
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errEmailNotFound
		}
		return fmt.Errorf("forgot password lookup: %w", err)
	}
	return s.otp.Issue(ctx, email, &u.UserID)
}

func (s *service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email := domain.NormalizeEmail(req.Email)
	u, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errEmailNotFound
		}
		return fmt.Errorf("reset password lookup: %w", err)
	}
	passwordHash, err := s.passwords.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.otp.Consume(ctx, email, req.OTP, func(ctx context.Context, tx domain.CredentialStore) error {
		return tx.UpdateUser(ctx, u.UserID, domain.UserPatch{PasswordHash: &passwordHash}, s.clock.Now())
	})
}
