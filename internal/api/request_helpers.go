package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
)

// pathUUID extracts a UUID from the URL path parameters, returning a
// field-keyed validation error on a missing or malformed value.
func pathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "This field is required.")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "Must be a valid UUID.")
	}

	return id, nil
}

// queryDate parses an optional date query parameter.
// Returns nil when the parameter is absent.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, domain.NewValidationError(name, "Must be a date in the form "+dateLayout+".")
	}
	return &t, nil
}

// queryInt parses an optional integer query parameter.
// Returns 0 when the parameter is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "Must be an integer.")
	}
	return n, nil
}
