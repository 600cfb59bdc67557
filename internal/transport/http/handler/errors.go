package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/student-records-api/internal/domain"
)

// httpError maps a service error onto a status and a client-safe message.
// Only messages attached with domain.Reason reach the body; store errors carry
// operation and constraint names and get a fixed text instead. Unrecognised
// errors are logged and answered with a generic 500.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, clientMessage(err, "invalid input"))
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusBadRequest, "OTP expired")
	case errors.Is(err, domain.ErrMismatch):
		writeError(w, http.StatusBadRequest, "Incorrect OTP")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, clientMessage(err, "not found"))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, clientMessage(err, "conflict"))
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrDelivery):
		slog.WarnContext(r.Context(), "delivery failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadGateway, "could not deliver the verification code")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func clientMessage(err error, fallback string) string {
	if msg, ok := domain.PublicMessage(err); ok {
		return msg
	}
	return fallback
}
