package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/festivore/festival-api/internal/api/shared"
	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/service"
	"github.com/festivore/festival-api/internal/service/auth"
	"github.com/festivore/festival-api/internal/store"
)

// HandleError is the single mapping point from service and domain errors
// to problem documents. Typed failures get their status and a safe
// message; everything else becomes a generic 500 with the underlying
// error logged server-side only.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		shared.RespondWithFieldProblem(w, r, http.StatusBadRequest,
			"Validation failed", "One or more fields are invalid.", validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "One or more fields are invalid.")

	case errors.Is(err, service.ErrInvalidCredentials):
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Invalid credentials.")

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")

	case errors.Is(err, domain.ErrForbidden):
		shared.RespondWithProblem(w, r, http.StatusForbidden,
			"Forbidden", safeForbiddenDetail(err))

	case store.IsNotFoundError(err):
		shared.RespondWithProblem(w, r, http.StatusNotFound,
			"Not Found", safeNotFoundDetail(err))

	default:
		shared.RespondWithProblemAndLog(w, r, http.StatusInternalServerError,
			"Internal Server Error", "An unexpected error occurred.", err)
	}
}

func safeForbiddenDetail(err error) string {
	switch {
	case errors.Is(err, service.ErrFestivalNotOwned):
		return "You do not own this festival."
	case errors.Is(err, service.ErrNotOrganizer):
		return "Organizer profile not found for user."
	default:
		return "Operation not permitted."
	}
}

func safeNotFoundDetail(err error) string {
	switch {
	case errors.Is(err, store.ErrFestivalNotFound):
		return "Festival not found."
	default:
		return "Resource not found."
	}
}

// ValidationProblem converts validator.ValidationErrors into the
// field-keyed problem document shape.
func ValidationProblem(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "Invalid request body.")
		return
	}

	fields := make(map[string][]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		name := jsonFieldName(fieldErr)
		fields[name] = append(fields[name], validationMessage(fieldErr))
	}

	shared.RespondWithFieldProblem(w, r, http.StatusBadRequest,
		"Validation failed", "One or more fields are invalid.", fields)
}

// jsonFieldName lower-cases the leading struct field segment so problem
// documents key on the JSON casing clients sent.
func jsonFieldName(fieldErr validator.FieldError) string {
	// Namespace looks like "RegisterRequest.Organizer.DisplayName";
	// drop the root struct and camel-case the rest.
	parts := strings.Split(fieldErr.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToLower(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, ".")
}

// validationMessage maps validation tags to user-friendly error messages.
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "min":
		return "Too short (minimum " + fieldErr.Param() + ")."
	case "max":
		return "Too long (maximum " + fieldErr.Param() + ")."
	case "oneof":
		return "Must be one of: " + fieldErr.Param() + "."
	case "datetime":
		return "Must be a date in the form " + fieldErr.Param() + "."
	default:
		return "Invalid value."
	}
}
