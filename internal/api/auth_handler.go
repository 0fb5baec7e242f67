package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/festivore/festival-api/internal/api/middleware"
	"github.com/festivore/festival-api/internal/api/shared"
	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Register handles POST /auth/register.
// Responds 204 on success; organizer registrations atomically create the
// linked profile.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "Invalid request format.")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		ValidationProblem(w, r, err)
		return
	}

	params := service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
	if req.Organizer != nil {
		params.Organizer = &service.OrganizerParams{
			DisplayName: req.Organizer.DisplayName,
			Website:     req.Organizer.Website,
			Instagram:   req.Organizer.Instagram,
		}
	}

	if err := h.authService.Register(r.Context(), params); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "Invalid request format.")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		ValidationProblem(w, r, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Token:              result.Token,
		UserID:             result.UserID,
		Email:              result.Email,
		Role:               string(result.Role),
		OrganizerProfileID: result.OrganizerProfileID,
		ExpiresAt:          result.ExpiresAt.Format(time.RFC3339),
	})
}

// Me handles GET /auth/me.
// The identity comes from the already-validated bearer token; the lookup
// fails with 401 if the user has since disappeared.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")
		return
	}

	result, err := h.authService.Me(r.Context(), identity.UserID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MeResponse{
		UserID:             result.UserID,
		Email:              result.Email,
		Role:               string(result.Role),
		OrganizerProfileID: result.OrganizerProfileID,
	})
}
