package domain

import "time"

// OtpRecord is a pending one-time code for a target email.
// UserID is set only when the code was issued for an existing account (password reset).
type OtpRecord struct {
	OtpID     string
	Email     string
	UserID    *string
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the record is past its expiry at now.
func (r *OtpRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
