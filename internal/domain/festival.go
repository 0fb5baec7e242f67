package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Festival validation errors
var (
	ErrFestivalIDEmpty        = errors.New("festival ID cannot be empty")
	ErrFestivalOwnerEmpty     = errors.New("festival organizer profile ID cannot be empty")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrTitleTooLong           = errors.New("title must be at most 200 characters")
	ErrDescriptionTooLong     = errors.New("description must be at most 4000 characters")
	ErrCountryEmpty           = errors.New("country cannot be empty")
	ErrCountryTooLong         = errors.New("country must be at most 100 characters")
	ErrCityEmpty              = errors.New("city cannot be empty")
	ErrCityTooLong            = errors.New("city must be at most 120 characters")
	ErrVenueNameTooLong       = errors.New("venue name must be at most 200 characters")
	ErrWebsiteURLTooLong      = errors.New("website URL must be at most 1000 characters")
	ErrTicketURLTooLong       = errors.New("ticket URL must be at most 1000 characters")
	ErrStartDateEmpty         = errors.New("start date cannot be empty")
	ErrEndDateEmpty           = errors.New("end date cannot be empty")
	ErrEndDateBeforeStartDate = errors.New("end date must be on or after start date")
)

// FestivalDetails holds the caller-editable fields of a festival.
// Create and Update both take the full set; identity, ownership, the
// published flag and the creation timestamp are never part of it.
type FestivalDetails struct {
	Title       string
	Description string
	Country     string
	City        string
	VenueName   string
	StartDate   time.Time
	EndDate     time.Time
	WebsiteURL  string
	TicketURL   string
}

// FestivalEvent represents a festival listing owned by an organizer profile.
// A festival starts unpublished and becomes publicly visible only once the
// owner flips IsPublished. Start and end are civil dates held at UTC midnight.
type FestivalEvent struct {
	ID                 uuid.UUID `json:"id"`
	OrganizerProfileID uuid.UUID `json:"organizer_profile_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Country            string    `json:"country"`
	City               string    `json:"city"`
	VenueName          string    `json:"venue_name,omitempty"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	WebsiteURL         string    `json:"website_url,omitempty"`
	TicketURL          string    `json:"ticket_url,omitempty"`
	IsPublished        bool      `json:"is_published"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewFestivalEvent creates an unpublished festival owned by the given
// organizer profile. CreatedAt is stamped once, in UTC, at the moment of
// the call. Returns an error if validation fails.
func NewFestivalEvent(organizerProfileID uuid.UUID, details FestivalDetails) (*FestivalEvent, error) {
	event := &FestivalEvent{
		ID:                 uuid.New(),
		OrganizerProfileID: organizerProfileID,
		IsPublished:        false,
		CreatedAt:          time.Now().UTC(),
	}
	event.applyDetails(details)

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// UpdateDetails replaces all editable fields with the given values.
// ID, owner, published flag and creation time are left untouched.
// Returns an error and leaves the event unchanged if the new details
// fail validation.
func (f *FestivalEvent) UpdateDetails(details FestivalDetails) error {
	prev := *f
	f.applyDetails(details)

	if err := f.Validate(); err != nil {
		*f = prev
		return err
	}

	return nil
}

// SetPublished flips the visibility flag. Draft -> Published and
// Published -> Draft are the only transitions a festival ever makes.
func (f *FestivalEvent) SetPublished(published bool) {
	f.IsPublished = published
}

func (f *FestivalEvent) applyDetails(details FestivalDetails) {
	f.Title = strings.TrimSpace(details.Title)
	f.Description = strings.TrimSpace(details.Description)
	f.Country = strings.TrimSpace(details.Country)
	f.City = strings.TrimSpace(details.City)
	f.VenueName = strings.TrimSpace(details.VenueName)
	f.StartDate = ToCivilDate(details.StartDate)
	f.EndDate = ToCivilDate(details.EndDate)
	f.WebsiteURL = strings.TrimSpace(details.WebsiteURL)
	f.TicketURL = strings.TrimSpace(details.TicketURL)
}

// Validate checks if the FestivalEvent has valid data.
// Returns an error if any field fails validation.
func (f *FestivalEvent) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFestivalIDEmpty
	}

	if f.OrganizerProfileID == uuid.Nil {
		return ErrFestivalOwnerEmpty
	}

	if f.Title == "" {
		return ErrTitleEmpty
	}

	if len(f.Title) > 200 {
		return ErrTitleTooLong
	}

	if len(f.Description) > 4000 {
		return ErrDescriptionTooLong
	}

	if f.Country == "" {
		return ErrCountryEmpty
	}

	if len(f.Country) > 100 {
		return ErrCountryTooLong
	}

	if f.City == "" {
		return ErrCityEmpty
	}

	if len(f.City) > 120 {
		return ErrCityTooLong
	}

	if len(f.VenueName) > 200 {
		return ErrVenueNameTooLong
	}

	if len(f.WebsiteURL) > 1000 {
		return ErrWebsiteURLTooLong
	}

	if len(f.TicketURL) > 1000 {
		return ErrTicketURLTooLong
	}

	if f.StartDate.IsZero() {
		return ErrStartDateEmpty
	}

	if f.EndDate.IsZero() {
		return ErrEndDateEmpty
	}

	if f.EndDate.Before(f.StartDate) {
		return ErrEndDateBeforeStartDate
	}

	return nil
}

// ToCivilDate truncates a timestamp to its calendar date at UTC midnight.
// Festival dates carry no time-of-day component.
func ToCivilDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
