package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
)

// Identity is a verified caller identity extracted from a validated
// bearer token (or assembled at login time before issuing one). It is
// passed explicitly into service calls instead of being read from
// ambient request state.
type Identity struct {
	// UserID is the unique identifier of the authenticated user.
	UserID uuid.UUID

	// Email is the user's registered email address.
	Email string

	// Role is the user's single assigned role.
	Role domain.Role

	// OrganizerProfileID is set only for organizer accounts; it identifies
	// the profile whose festivals the caller may mutate.
	OrganizerProfileID *uuid.UUID
}

// TokenService defines operations for managing signed bearer tokens.
type TokenService interface {
	// GenerateToken creates a signed token embedding the identity's user ID,
	// email, role and, when present, organizer profile ID.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, identity Identity) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims if the token is valid, or an error if
	// validation fails (expired, invalid signature, wrong issuer, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime reports how long issued tokens remain valid.
	TokenLifetime() time.Duration
}

// Claims represents the verified contents of a bearer token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Email is the user's email at issue time.
	Email string `json:"email,omitempty"`

	// Role is the user's single assigned role.
	Role domain.Role `json:"role,omitempty"`

	// OrganizerProfileID is present only for organizer accounts.
	OrganizerProfileID *uuid.UUID `json:"organizer_profile_id,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity converts verified claims back into an Identity for service calls.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:             c.UserID,
		Email:              c.Email,
		Role:               c.Role,
		OrganizerProfileID: c.OrganizerProfileID,
	}
}
