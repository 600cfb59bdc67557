package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/clock"
	"github.com/student-records-api/internal/pkg/id"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

var errNoPendingCode = domain.Reason(domain.ErrNotFound, "OTP expired or invalid")

const (
	codeMin  = 100000
	codeSpan = 900000 // codes fall in [100000, 999999]
)

// Notifier delivers a plaintext code out-of-band.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

type hasher interface {
	Hash(plaintext string) (string, error)
	Verify(hashed, plaintext string) bool
}

// Mutation runs inside the verification transaction once the code has matched.
// Its error aborts the transaction, leaving the code unconsumed.
type Mutation func(ctx context.Context, tx domain.CredentialStore) error

// Authenticator issues and consumes one-time codes keyed by email.
type Authenticator struct {
	store    domain.CredentialStore
	hasher   hasher
	notifier Notifier
	clock    clock.Clock
	ttl      time.Duration
}

// Deps wires an Authenticator. Clock and TTL fall back to the wall clock and DefaultTTL.
type Deps struct {
	Store    domain.CredentialStore
	Hasher   hasher
	Notifier Notifier
	Clock    clock.Clock
	TTL      time.Duration
}

// NewAuthenticator builds an Authenticator from deps.
func NewAuthenticator(deps Deps) *Authenticator {
	a := &Authenticator{
		store:    deps.Store,
		hasher:   deps.Hasher,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		ttl:      deps.TTL,
	}
	if a.clock == nil {
		a.clock = clock.System{}
	}
	if a.ttl <= 0 {
		a.ttl = DefaultTTL
	}
	return a
}

// Generate returns a six-digit decimal code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Issue stores a hashed code for email and sends the plaintext to the notifier.
// Earlier unconsumed codes for the same email stay in place; only the newest is ever checked.
// A notifier failure returns ErrDelivery and the stored record is left to expire.
func (a *Authenticator) Issue(ctx context.Context, email string, userID *string) error {
	code, err := Generate()
	if err != nil {
		return err
	}
	codeHash, err := a.hasher.Hash(code)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}
	now := a.clock.Now()
	rec := &domain.OtpRecord{
		OtpID:     id.New(),
		Email:     email,
		UserID:    userID,
		CodeHash:  codeHash,
		ExpiresAt: now.Add(a.ttl),
		CreatedAt: now,
	}
	if err := a.store.InsertOtp(ctx, rec); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if err := a.notifier.SendOTP(ctx, email, code); err != nil {
		slog.WarnContext(ctx, "otp stored but not delivered", "email", email, "otp_id", rec.OtpID, "err", err)
		return fmt.Errorf("send otp to %s: %w", email, errors.Join(domain.ErrDelivery, err))
	}
	return nil
}

// Verify consumes the newest code for email without any further mutation.
func (a *Authenticator) Verify(ctx context.Context, email, code string) error {
	return a.Consume(ctx, email, code, nil)
}

// Consume checks code against the newest record for email and, on a match,
// runs mutate and deletes every record for email in the same transaction.
//
//	no record        -> ErrNotFound
//	now > expires_at -> ErrExpired  (record kept)
//	hash mismatch    -> ErrMismatch (record kept, caller may retry)
//	match            -> mutate, then all records for email deleted
func (a *Authenticator) Consume(ctx context.Context, email, code string, mutate Mutation) error {
	return a.store.Atomic(ctx, func(ctx context.Context, tx domain.CredentialStore) error {
		rec, err := tx.FindLatestOtp(ctx, email)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no pending code for %s: %w", email, errNoPendingCode)
		}
		if err != nil {
			return fmt.Errorf("find otp: %w", err)
		}
		if rec.Expired(a.clock.Now()) {
			return fmt.Errorf("code expired at %s: %w", rec.ExpiresAt.Format(time.RFC3339), domain.ErrExpired)
		}
		if !a.hasher.Verify(rec.CodeHash, code) {
			return fmt.Errorf("code does not match: %w", domain.ErrMismatch)
		}
		if mutate != nil {
			if err := mutate(ctx, tx); err != nil {
				return err
			}
		}
		if err := tx.DeleteOtpsFor(ctx, email); err != nil {
			return fmt.Errorf("delete otps: %w", err)
		}
		return nil
	})
}
