package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/platform/logger"
	"github.com/festivore/festival-api/internal/store"
)

const festivalColumns = `id, organizer_profile_id, title, description, country, city,
		venue_name, start_date, end_date, website_url, ticket_url, is_published, created_at`

// PostgresFestivalStore implements the store.FestivalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFestivalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFestivalStore creates a new PostgreSQL implementation of the
// FestivalStore interface.
func NewPostgresFestivalStore(db store.DBTX, log *slog.Logger) *PostgresFestivalStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresFestivalStore{
		db:     db,
		logger: log.With(slog.String("component", "festival_store")),
	}
}

// Ensure PostgresFestivalStore implements store.FestivalStore interface
var _ store.FestivalStore = (*PostgresFestivalStore)(nil)

// WithTx implements store.FestivalStore.WithTx
func (s *PostgresFestivalStore) WithTx(tx *sql.Tx) store.FestivalStore {
	return &PostgresFestivalStore{db: tx, logger: s.logger}
}

// Create implements store.FestivalStore.Create
func (s *PostgresFestivalStore) Create(ctx context.Context, event *domain.FestivalEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("festival validation failed during create",
			slog.String("error", err.Error()),
			slog.String("festival_id", event.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO festivals (id, organizer_profile_id, title, description, country, city,
			venue_name, start_date, end_date, website_url, ticket_url, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.OrganizerProfileID,
		event.Title,
		nullString(event.Description),
		event.Country,
		event.City,
		nullString(event.VenueName),
		event.StartDate,
		event.EndDate,
		nullString(event.WebsiteURL),
		nullString(event.TicketURL),
		event.IsPublished,
		event.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: organizer profile with ID %s not found",
				store.ErrInvalidEntity, event.OrganizerProfileID)
		}

		log.Error("failed to create festival",
			slog.String("error", err.Error()),
			slog.String("festival_id", event.ID.String()))
		return err
	}

	return nil
}

// GetByID implements store.FestivalStore.GetByID
func (s *PostgresFestivalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error) {
	query := `SELECT ` + festivalColumns + ` FROM festivals WHERE id = $1`
	return scanFestival(s.db.QueryRowContext(ctx, query, id))
}

// GetPublishedByID implements store.FestivalStore.GetPublishedByID
// The is_published predicate makes an unpublished festival scan as
// sql.ErrNoRows, so it is reported exactly like a missing one.
func (s *PostgresFestivalStore) GetPublishedByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error) {
	query := `SELECT ` + festivalColumns + ` FROM festivals WHERE id = $1 AND is_published = TRUE`
	return scanFestival(s.db.QueryRowContext(ctx, query, id))
}

// Update implements store.FestivalStore.Update
func (s *PostgresFestivalStore) Update(ctx context.Context, event *domain.FestivalEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("festival validation failed during update",
			slog.String("error", err.Error()),
			slog.String("festival_id", event.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE festivals
		SET title = $1, description = $2, country = $3, city = $4, venue_name = $5,
			start_date = $6, end_date = $7, website_url = $8, ticket_url = $9, is_published = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		event.Title,
		nullString(event.Description),
		event.Country,
		event.City,
		nullString(event.VenueName),
		event.StartDate,
		event.EndDate,
		nullString(event.WebsiteURL),
		nullString(event.TicketURL),
		event.IsPublished,
		event.ID,
	)
	if err != nil {
		log.Error("failed to update festival",
			slog.String("error", err.Error()),
			slog.String("festival_id", event.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrFestivalNotFound
	}

	return nil
}

// Delete implements store.FestivalStore.Delete
func (s *PostgresFestivalStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM festivals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrFestivalNotFound
	}

	return nil
}

// ListPublished implements store.FestivalStore.ListPublished
// It composes the conjunctive filter predicates into a WHERE clause,
// counts the matches before pagination, then fetches one page.
func (s *PostgresFestivalStore) ListPublished(
	ctx context.Context,
	filter store.FestivalFilter,
	sort store.FestivalSort,
	page store.Page,
) ([]*domain.FestivalEvent, int, error) {
	where, args := buildFestivalFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM festivals ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count festivals: %w", err)
	}

	orderBy := `ORDER BY start_date ASC, title ASC`
	if sort == store.SortStartDateDesc {
		orderBy = `ORDER BY start_date DESC, title ASC`
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM festivals %s %s LIMIT $%d OFFSET $%d`,
		festivalColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query festivals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items, err := collectFestivals(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListByOwner implements store.FestivalStore.ListByOwner
func (s *PostgresFestivalStore) ListByOwner(ctx context.Context, organizerProfileID uuid.UUID) ([]*domain.FestivalEvent, error) {
	query := `SELECT ` + festivalColumns + `
		FROM festivals
		WHERE organizer_profile_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, organizerProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query festivals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectFestivals(rows)
}

// buildFestivalFilter renders the listing filter into a WHERE clause and
// its positional arguments. Publication is always required; the date
// range is containment, not overlap: with both bounds set, a festival
// matches only if it starts and ends inside the queried span.
func buildFestivalFilter(filter store.FestivalFilter) (string, []any) {
	conds := []string{"is_published = TRUE"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Country != nil {
		conds = append(conds, fmt.Sprintf("country = %s", arg(*filter.Country)))
	}

	switch {
	case filter.StartDate != nil && filter.EndDate != nil:
		conds = append(conds, fmt.Sprintf("start_date >= %s", arg(*filter.StartDate)))
		conds = append(conds, fmt.Sprintf("end_date <= %s", arg(*filter.EndDate)))
	case filter.StartDate != nil:
		conds = append(conds, fmt.Sprintf("start_date >= %s", arg(*filter.StartDate)))
	case filter.EndDate != nil:
		conds = append(conds, fmt.Sprintf("end_date <= %s", arg(*filter.EndDate)))
	}

	if filter.Search != nil {
		pattern := "%" + escapeLike(*filter.Search) + "%"
		p := arg(pattern)
		conds = append(conds, fmt.Sprintf("(title LIKE %s OR city LIKE %s)", p, p))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike escapes LIKE metacharacters so search terms match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func scanFestival(row *sql.Row) (*domain.FestivalEvent, error) {
	var (
		event       domain.FestivalEvent
		description sql.NullString
		venueName   sql.NullString
		websiteURL  sql.NullString
		ticketURL   sql.NullString
	)
	err := row.Scan(
		&event.ID,
		&event.OrganizerProfileID,
		&event.Title,
		&description,
		&event.Country,
		&event.City,
		&venueName,
		&event.StartDate,
		&event.EndDate,
		&websiteURL,
		&ticketURL,
		&event.IsPublished,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFestivalNotFound
		}
		return nil, err
	}

	event.Description = description.String
	event.VenueName = venueName.String
	event.WebsiteURL = websiteURL.String
	event.TicketURL = ticketURL.String
	return &event, nil
}

func collectFestivals(rows *sql.Rows) ([]*domain.FestivalEvent, error) {
	items := make([]*domain.FestivalEvent, 0)
	for rows.Next() {
		var (
			event       domain.FestivalEvent
			description sql.NullString
			venueName   sql.NullString
			websiteURL  sql.NullString
			ticketURL   sql.NullString
		)
		err := rows.Scan(
			&event.ID,
			&event.OrganizerProfileID,
			&event.Title,
			&description,
			&event.Country,
			&event.City,
			&venueName,
			&event.StartDate,
			&event.EndDate,
			&websiteURL,
			&ticketURL,
			&event.IsPublished,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan festival row: %w", err)
		}

		event.Description = description.String
		event.VenueName = venueName.String
		event.WebsiteURL = websiteURL.String
		event.TicketURL = ticketURL.String
		items = append(items, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate festival rows: %w", err)
	}

	return items, nil
}
