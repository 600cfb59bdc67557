package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrExpired            = errors.New("expired")
	ErrMismatch           = errors.New("mismatch")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDelivery           = errors.New("delivery failed")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ClientError carries a message written for the API caller next to the sentinel
// that decides the status. Only messages attached this way reach a response body.
type ClientError struct {
	Kind    error
	Message string
}

func (e *ClientError) Error() string { return e.Message + ": " + e.Kind.Error() }
func (e *ClientError) Unwrap() error { return e.Kind }

// Reason builds a ClientError of the given kind.
func Reason(kind error, message string) error {
	return &ClientError{Kind: kind, Message: message}
}

// PublicMessage returns the outermost client message in err's chain.
func PublicMessage(err error) (string, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	return "", false
}
