package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/id"
)

// pathID returns the {id} route parameter. Anything that is not a ULID cannot
// name a stored row, so it is reported as not found without a store round trip.
func pathID(r *http.Request) (string, error) {
	v := chi.URLParam(r, "id")
	if !id.Valid(v) {
		return "", fmt.Errorf("malformed id %q: %w", v, domain.ErrNotFound)
	}
	return v, nil
}
