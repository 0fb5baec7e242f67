package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/store"
)

// OrganizerService resolves users to their owned organizer profile.
// It is the authorization gate in front of every organizer-scoped
// operation: mutations must obtain a profile ID here before touching
// any festival record.
type OrganizerService struct {
	profileStore store.OrganizerProfileStore
}

// NewOrganizerService creates a new OrganizerService.
func NewOrganizerService(profileStore store.OrganizerProfileStore) *OrganizerService {
	return &OrganizerService{profileStore: profileStore}
}

// RequireProfileID returns the organizer profile ID owned by the user,
// or ErrNotOrganizer if the user owns no profile.
func (s *OrganizerService) RequireProfileID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return uuid.Nil, ErrNotOrganizer
		}
		return uuid.Nil, fmt.Errorf("failed to resolve organizer profile: %w", err)
	}
	return profile.ID, nil
}

// ProfileID is the non-failing variant of RequireProfileID for read paths
// that need an optional organizer context. It returns nil when the user
// owns no profile.
func (s *OrganizerService) ProfileID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve organizer profile: %w", err)
	}
	id := profile.ID
	return &id, nil
}
