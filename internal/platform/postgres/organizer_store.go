package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/platform/logger"
	"github.com/festivore/festival-api/internal/store"
)

// PostgresOrganizerProfileStore implements store.OrganizerProfileStore
// using a PostgreSQL database as the storage backend.
type PostgresOrganizerProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrganizerProfileStore creates a new PostgreSQL implementation
// of the OrganizerProfileStore interface.
func NewPostgresOrganizerProfileStore(db store.DBTX, log *slog.Logger) *PostgresOrganizerProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresOrganizerProfileStore{
		db:     db,
		logger: log.With(slog.String("component", "organizer_profile_store")),
	}
}

// Ensure PostgresOrganizerProfileStore implements the interface
var _ store.OrganizerProfileStore = (*PostgresOrganizerProfileStore)(nil)

// WithTx implements store.OrganizerProfileStore.WithTx
func (s *PostgresOrganizerProfileStore) WithTx(tx *sql.Tx) store.OrganizerProfileStore {
	return &PostgresOrganizerProfileStore{db: tx, logger: s.logger}
}

// Create implements store.OrganizerProfileStore.Create
// The unique index on user_id makes a second profile for the same user
// fail with store.ErrProfileExists even under concurrent registrations.
func (s *PostgresOrganizerProfileStore) Create(ctx context.Context, profile *domain.OrganizerProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("organizer profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO organizer_profiles (id, user_id, display_name, website, instagram, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.DisplayName,
		nullString(profile.Website),
		nullString(profile.Instagram),
		profile.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			log.Debug("duplicate organizer profile during create",
				slog.String("user_id", profile.UserID.String()))
			return store.ErrProfileExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, profile.UserID)
		}

		log.Error("failed to create organizer profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	log.Debug("organizer profile created",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByUserID implements store.OrganizerProfileStore.GetByUserID
// Returns store.ErrProfileNotFound if the user owns no profile.
func (s *PostgresOrganizerProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OrganizerProfile, error) {
	query := `
		SELECT id, user_id, display_name, website, instagram, created_at
		FROM organizer_profiles
		WHERE user_id = $1
	`

	var (
		profile   domain.OrganizerProfile
		website   sql.NullString
		instagram sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.DisplayName,
		&website,
		&instagram,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		return nil, err
	}

	profile.Website = website.String
	profile.Instagram = instagram.String
	return &profile, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
