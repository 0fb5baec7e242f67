package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
)

// OrganizerProfileStore defines the interface for organizer profile persistence.
type OrganizerProfileStore interface {
	// Create saves a new organizer profile.
	// Returns ErrProfileExists if the user already owns a profile; the
	// store's unique constraint on user_id enforces this even across
	// concurrent registrations.
	Create(ctx context.Context, profile *domain.OrganizerProfile) error

	// GetByUserID retrieves the profile owned by the given user.
	// Returns ErrProfileNotFound if the user owns no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OrganizerProfile, error)

	// WithTx returns a new OrganizerProfileStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) OrganizerProfileStore
}
