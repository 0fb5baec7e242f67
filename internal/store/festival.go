package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
)

// FestivalSort selects the ordering of public festival listings.
// Both orders break start-date ties by title ascending.
type FestivalSort string

const (
	SortStartDateAsc  FestivalSort = "StartDateAsc"
	SortStartDateDesc FestivalSort = "StartDateDesc"
)

// FestivalFilter holds the optional, conjunctive predicates of a public
// festival listing. Nil fields are not applied. Date predicates use
// containment semantics: with both bounds set, only festivals lying
// entirely inside [StartDate, EndDate] match.
type FestivalFilter struct {
	Country   *string
	StartDate *time.Time
	EndDate   *time.Time
	Search    *string
}

// Pagination defaults and bounds for festival listings.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Page is a normalized pagination window.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps raw pagination input: page floors to 1, size
// defaults to 10 and is clamped to [1, 50]. Zero values mean "not given".
func NormalizePage(page, pageSize int) Page {
	p := page
	if p < 1 {
		p = DefaultPage
	}

	ps := pageSize
	if ps == 0 {
		ps = DefaultPageSize
	}
	if ps < 1 {
		ps = DefaultPageSize
	}
	if ps > MaxPageSize {
		ps = MaxPageSize
	}

	return Page{Number: p, Size: ps}
}

// Offset returns the row offset of the window.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// FestivalStore defines the interface for festival persistence and the
// filtered public listing query.
type FestivalStore interface {
	// Create saves a new festival event.
	Create(ctx context.Context, event *domain.FestivalEvent) error

	// GetByID retrieves a festival regardless of publication state.
	// Returns ErrFestivalNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error)

	// GetPublishedByID retrieves a published festival. An unpublished
	// festival yields the same ErrFestivalNotFound as a missing one, so
	// callers cannot probe for unpublished records.
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error)

	// Update replaces the stored festival with the given state.
	// Returns ErrFestivalNotFound if it does not exist.
	Update(ctx context.Context, event *domain.FestivalEvent) error

	// Delete permanently removes a festival.
	// Returns ErrFestivalNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListPublished returns the page of published festivals matching the
	// filter, plus the total match count before pagination.
	ListPublished(ctx context.Context, filter FestivalFilter, sort FestivalSort, page Page) ([]*domain.FestivalEvent, int, error)

	// ListByOwner returns all festivals of an organizer profile, published
	// or not, newest creation first.
	ListByOwner(ctx context.Context, organizerProfileID uuid.UUID) ([]*domain.FestivalEvent, error)

	// WithTx returns a new FestivalStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FestivalStore
}
