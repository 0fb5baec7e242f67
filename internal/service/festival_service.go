package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/platform/logger"
	"github.com/festivore/festival-api/internal/store"
)

// FestivalQuery holds the raw inputs of a public festival listing before
// validation and pagination normalization.
type FestivalQuery struct {
	Country   string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	SortBy    store.FestivalSort
	Page      int
	PageSize  int
}

// PagedFestivals is a page of festivals plus the total match count before
// pagination and the normalized window that produced the page.
type PagedFestivals struct {
	Items      []*domain.FestivalEvent
	TotalCount int
	Page       int
	PageSize   int
}

// FestivalService implements the festival query engine: filtered, sorted,
// paginated public views plus owner-gated mutations.
type FestivalService struct {
	festivalStore store.FestivalStore
	organizers    *OrganizerService
	logger        *slog.Logger
}

// NewFestivalService creates a new FestivalService.
func NewFestivalService(
	festivalStore store.FestivalStore,
	organizers *OrganizerService,
	log *slog.Logger,
) *FestivalService {
	if log == nil {
		log = slog.Default()
	}
	return &FestivalService{
		festivalStore: festivalStore,
		organizers:    organizers,
		logger:        log.With(slog.String("component", "festival_service")),
	}
}

// ListPublished returns a page of published festivals matching the query.
// All filter predicates are optional and conjunctive; the date range uses
// containment semantics, so a festival only matches when it lies entirely
// inside the queried span.
func (s *FestivalService) ListPublished(ctx context.Context, query FestivalQuery) (*PagedFestivals, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	page := store.NormalizePage(query.Page, query.PageSize)

	filter := store.FestivalFilter{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	}
	if country := strings.TrimSpace(query.Country); country != "" {
		filter.Country = &country
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		filter.Search = &search
	}

	sort := query.SortBy
	if sort == "" {
		sort = store.SortStartDateAsc
	}

	items, total, err := s.festivalStore.ListPublished(ctx, filter, sort, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list festivals: %w", err)
	}

	return &PagedFestivals{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}

// GetPublishedByID returns a published festival by ID.
// An unpublished festival is indistinguishable from a missing one:
// both yield store.ErrFestivalNotFound.
func (s *FestivalService) GetPublishedByID(ctx context.Context, id uuid.UUID) (*domain.FestivalEvent, error) {
	return s.festivalStore.GetPublishedByID(ctx, id)
}

// Create stores a new festival owned by the caller's organizer profile.
// The festival starts unpublished regardless of the request.
func (s *FestivalService) Create(ctx context.Context, userID uuid.UUID, details domain.FestivalDetails) (*domain.FestivalEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	organizerID, err := s.organizers.RequireProfileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	event, err := domain.NewFestivalEvent(organizerID, details)
	if err != nil {
		return nil, festivalValidationError(err)
	}

	if err := s.festivalStore.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create festival: %w", err)
	}

	log.Info("festival created",
		slog.String("festival_id", event.ID.String()),
		slog.String("organizer_profile_id", organizerID.String()))
	return event, nil
}

// Update replaces the editable fields of an owned festival.
// ID, owner, published flag and creation time are never touched.
func (s *FestivalService) Update(ctx context.Context, userID, id uuid.UUID, details domain.FestivalDetails) (*domain.FestivalEvent, error) {
	event, err := s.ownedFestival(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := event.UpdateDetails(details); err != nil {
		return nil, festivalValidationError(err)
	}

	if err := s.festivalStore.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update festival: %w", err)
	}

	return event, nil
}

// Delete permanently removes an owned festival.
func (s *FestivalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := s.ownedFestival(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.festivalStore.Delete(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to delete festival: %w", err)
	}

	log.Info("festival deleted", slog.String("festival_id", id.String()))
	return nil
}

// SetPublish flips the published flag of an owned festival. No other
// field changes.
func (s *FestivalService) SetPublish(ctx context.Context, userID, id uuid.UUID, isPublished bool) (*domain.FestivalEvent, error) {
	event, err := s.ownedFestival(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	event.SetPublished(isPublished)

	if err := s.festivalStore.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update festival: %w", err)
	}

	return event, nil
}

// ListMine returns all of the caller's festivals, published or not,
// newest creation first.
func (s *FestivalService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.FestivalEvent, error) {
	organizerID, err := s.organizers.RequireProfileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.festivalStore.ListByOwner(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list festivals: %w", err)
	}
	return items, nil
}

// ownedFestival is the shared authorization gate for mutations: resolve
// the caller's profile, fetch the record, then compare owners. A caller
// without a profile gets Forbidden before the record is touched; an
// existing record owned by someone else gets Forbidden, not NotFound.
func (s *FestivalService) ownedFestival(ctx context.Context, userID, id uuid.UUID) (*domain.FestivalEvent, error) {
	organizerID, err := s.organizers.RequireProfileID(ctx, userID)
	if err != nil {
		return nil, err
	}

	event, err := s.festivalStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.OrganizerProfileID != organizerID {
		return nil, ErrFestivalNotOwned
	}

	return event, nil
}

// validateQuery enforces the listing limits: country and search length,
// and date-range ordering when both bounds are present.
func validateQuery(query FestivalQuery) error {
	var errs *domain.ValidationError

	add := func(field, message string) {
		if errs == nil {
			errs = domain.NewFieldErrors(domain.FieldErrors{})
		}
		errs.Add(field, message)
	}

	if len(strings.TrimSpace(query.Country)) > 100 {
		add("country", "Country must be at most 100 characters.")
	}
	if len(strings.TrimSpace(query.Search)) > 200 {
		add("q", "Search text must be at most 200 characters.")
	}
	if query.StartDate != nil && query.EndDate != nil && query.EndDate.Before(*query.StartDate) {
		add("endDate", "endDate must be on or after startDate.")
	}
	if query.SortBy != "" && query.SortBy != store.SortStartDateAsc && query.SortBy != store.SortStartDateDesc {
		add("sortBy", "sortBy must be StartDateAsc or StartDateDesc.")
	}

	if errs != nil {
		return errs
	}
	return nil
}

// festivalValidationError maps domain festival validation errors onto a
// field-keyed ValidationError for the API layer.
func festivalValidationError(err error) error {
	field := "request"
	switch err {
	case domain.ErrTitleEmpty, domain.ErrTitleTooLong:
		field = "title"
	case domain.ErrDescriptionTooLong:
		field = "description"
	case domain.ErrCountryEmpty, domain.ErrCountryTooLong:
		field = "country"
	case domain.ErrCityEmpty, domain.ErrCityTooLong:
		field = "city"
	case domain.ErrVenueNameTooLong:
		field = "venueName"
	case domain.ErrWebsiteURLTooLong:
		field = "websiteUrl"
	case domain.ErrTicketURLTooLong:
		field = "ticketUrl"
	case domain.ErrStartDateEmpty:
		field = "startDate"
	case domain.ErrEndDateEmpty, domain.ErrEndDateBeforeStartDate:
		field = "endDate"
	}
	return domain.NewValidationError(field, err.Error())
}
