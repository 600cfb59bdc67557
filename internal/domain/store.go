package domain

import (
	"context"
	"time"
)

// CredentialStore is the persistence boundary for users and pending OTP records.
// Atomic runs fn against a transactional view of the store; fn's error rolls everything back.
type CredentialStore interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, userID string) (*User, error)
	InsertUser(ctx context.Context, u *User) error
	UpdateUser(ctx context.Context, userID string, patch UserPatch, at time.Time) error
	DeleteUser(ctx context.Context, userID string) error

	InsertOtp(ctx context.Context, rec *OtpRecord) error
	// FindLatestOtp returns the most recently issued record for email.
	// Inside Atomic the row is locked until the transaction ends.
	FindLatestOtp(ctx context.Context, email string) (*OtpRecord, error)
	DeleteOtpsFor(ctx context.Context, email string) error
	DeleteOtpsForUser(ctx context.Context, userID string) error

	Atomic(ctx context.Context, fn func(ctx context.Context, tx CredentialStore) error) error
}
