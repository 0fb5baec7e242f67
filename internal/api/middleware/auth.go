package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/festivore/festival-api/internal/api/shared"
	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/service/auth"
)

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate validates the bearer token from the Authorization header
// and places the verified identity in the request context. The token is
// validated once here; everything downstream works off the Identity.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithProblem(w, r, http.StatusUnauthorized,
				"Unauthorized", "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithProblem(w, r, http.StatusUnauthorized,
				"Unauthorized", "Invalid authorization format")
			return
		}

		claims, err := m.tokenService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithProblem(w, r, http.StatusUnauthorized,
					"Unauthorized", "Token expired")
			case auth.ErrInvalidToken, auth.ErrTokenNotYetValid:
				shared.RespondWithProblem(w, r, http.StatusUnauthorized,
					"Unauthorized", "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithProblem(w, r, http.StatusInternalServerError,
					"Internal Server Error", "Authentication error")
			}
			return
		}

		identity := claims.Identity()
		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOrganizer rejects authenticated callers whose role is not
// organizer before the handler runs. It must sit behind Authenticate.
func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r)
		if !ok {
			shared.RespondWithProblem(w, r, http.StatusUnauthorized,
				"Unauthorized", "Authentication required")
			return
		}

		if identity.Role != domain.RoleOrganizer {
			shared.RespondWithProblem(w, r, http.StatusForbidden,
				"Forbidden", "Organizer role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetIdentity extracts the verified caller identity from the request
// context. Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	identity, ok := r.Context().Value(shared.IdentityContextKey).(auth.Identity)
	return identity, ok
}
