package http

import (
	"context"
	"database/sql"

	jwtinfra "github.com/student-records-api/internal/infrastructure/jwt"
	"github.com/student-records-api/internal/pkg/clock"
)

// TokenProvider signs login tokens and verifies bearer tokens.
type TokenProvider interface {
	Sign(userID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

// Notifier delivers one-time codes out of band.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	DB          *sql.DB
	Mailer      Notifier
	JWTProvider TokenProvider
	Clock       clock.Clock

	PasswordHashCost int
	OTPHashCost      int
}
