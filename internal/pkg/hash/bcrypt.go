// Package hash wraps bcrypt for passwords and one-time codes.
// Only hashes are stored; plaintext is compared against them in constant time.
package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/student-records-api/internal/domain"
)

// Bcrypt hashes and verifies secrets with a fixed work factor.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a hasher. Costs below bcrypt.DefaultCost are raised to it.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Bcrypt) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.Reason(domain.ErrValidation, "password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hashed.
func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
