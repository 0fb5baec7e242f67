package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organizer profile validation errors
var (
	ErrProfileIDEmpty        = errors.New("organizer profile ID cannot be empty")
	ErrProfileUserIDEmpty    = errors.New("organizer profile user ID cannot be empty")
	ErrDisplayNameEmpty      = errors.New("display name cannot be empty")
	ErrDisplayNameTooLong    = errors.New("display name must be at most 120 characters")
	ErrProfileWebsiteTooLong = errors.New("website must be at most 500 characters")
	ErrInstagramTooLong      = errors.New("instagram handle must be at most 200 characters")
)

// OrganizerProfile links a user to the festivals they own.
// Each user holds at most one profile; the user_id column carries a unique
// constraint so the invariant also holds under concurrent registrations.
type OrganizerProfile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Website     string    `json:"website,omitempty"`
	Instagram   string    `json:"instagram,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOrganizerProfile creates a profile for the given user.
// Returns an error if validation fails.
func NewOrganizerProfile(userID uuid.UUID, displayName, website, instagram string) (*OrganizerProfile, error) {
	profile := &OrganizerProfile{
		ID:          uuid.New(),
		UserID:      userID,
		DisplayName: strings.TrimSpace(displayName),
		Website:     strings.TrimSpace(website),
		Instagram:   strings.TrimSpace(instagram),
		CreatedAt:   time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the OrganizerProfile has valid data.
func (p *OrganizerProfile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProfileIDEmpty
	}

	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}

	if p.DisplayName == "" {
		return ErrDisplayNameEmpty
	}

	if len(p.DisplayName) > 120 {
		return ErrDisplayNameTooLong
	}

	if len(p.Website) > 500 {
		return ErrProfileWebsiteTooLong
	}

	if len(p.Instagram) > 200 {
		return ErrInstagramTooLong
	}

	return nil
}
