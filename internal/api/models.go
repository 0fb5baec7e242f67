package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/service"
)

// dateLayout is the wire format for festival dates; they carry no
// time-of-day component.
const dateLayout = "2006-01-02"

// OrganizerFields are the profile fields of an organizer registration.
type OrganizerFields struct {
	DisplayName string `json:"displayName" validate:"required,max=120"`
	Website     string `json:"website"     validate:"omitempty,max=500"`
	Instagram   string `json:"instagram"   validate:"omitempty,max=200"`
}

// RegisterRequest defines the payload for the user registration endpoint.
// Organizer fields are required iff the role is organizer; the service
// enforces the conditional, the tags cover shape and limits.
type RegisterRequest struct {
	Email     string           `json:"email"     validate:"required,email,max=256"`
	Password  string           `json:"password"  validate:"required,min=8,max=72"`
	Role      string           `json:"role"      validate:"required,oneof=user organizer"`
	Organizer *OrganizerFields `json:"organizer" validate:"omitempty"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,max=128"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	Token              string     `json:"token"`
	UserID             uuid.UUID  `json:"userId"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	OrganizerProfileID *uuid.UUID `json:"organizerProfileId,omitempty"`
	ExpiresAt          string     `json:"expiresAt,omitempty"`
}

// MeResponse defines the identity returned by the /auth/me endpoint.
type MeResponse struct {
	UserID             uuid.UUID  `json:"userId"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	OrganizerProfileID *uuid.UUID `json:"organizerProfileId,omitempty"`
}

// FestivalPayload is the shared body of festival create and update:
// both are full-field replacements of the editable fields.
type FestivalPayload struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=4000"`
	Country     string `json:"country"     validate:"required,max=100"`
	City        string `json:"city"        validate:"required,max=120"`
	VenueName   string `json:"venueName"   validate:"omitempty,max=200"`
	StartDate   string `json:"startDate"   validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate"     validate:"required,datetime=2006-01-02"`
	WebsiteURL  string `json:"websiteUrl"  validate:"omitempty,max=1000"`
	TicketURL   string `json:"ticketUrl"   validate:"omitempty,max=1000"`
}

// details converts the payload into domain festival details.
// Date shape is already guaranteed by the validator tags.
func (p *FestivalPayload) details() (domain.FestivalDetails, error) {
	start, err := time.ParseInLocation(dateLayout, p.StartDate, time.UTC)
	if err != nil {
		return domain.FestivalDetails{}, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, p.EndDate, time.UTC)
	if err != nil {
		return domain.FestivalDetails{}, fmt.Errorf("invalid endDate: %w", err)
	}

	return domain.FestivalDetails{
		Title:       p.Title,
		Description: p.Description,
		Country:     p.Country,
		City:        p.City,
		VenueName:   p.VenueName,
		StartDate:   start,
		EndDate:     end,
		WebsiteURL:  p.WebsiteURL,
		TicketURL:   p.TicketURL,
	}, nil
}

// PublishRequest defines the payload for the publish endpoint.
// The pointer distinguishes a missing field from an explicit false.
type PublishRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required"`
}

// FestivalListItem is the public list projection of a festival.
// Description, URLs and the owning organizer appear only in the detail view.
type FestivalListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	IsPublished bool      `json:"isPublished"`
}

// FestivalDetail is the single-item projection of a festival.
type FestivalDetail struct {
	ID                 uuid.UUID `json:"id"`
	OrganizerProfileID uuid.UUID `json:"organizerProfileId"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Country            string    `json:"country"`
	City               string    `json:"city"`
	VenueName          string    `json:"venueName,omitempty"`
	StartDate          string    `json:"startDate"`
	EndDate            string    `json:"endDate"`
	WebsiteURL         string    `json:"websiteUrl,omitempty"`
	TicketURL          string    `json:"ticketUrl,omitempty"`
	IsPublished        bool      `json:"isPublished"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PagedFestivalsResponse is a page of list items plus pre-pagination
// total and the normalized window.
type PagedFestivalsResponse struct {
	Items      []FestivalListItem `json:"items"`
	TotalCount int                `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}

func newFestivalListItem(event *domain.FestivalEvent) FestivalListItem {
	return FestivalListItem{
		ID:          event.ID,
		Title:       event.Title,
		Country:     event.Country,
		City:        event.City,
		StartDate:   event.StartDate.Format(dateLayout),
		EndDate:     event.EndDate.Format(dateLayout),
		IsPublished: event.IsPublished,
	}
}

func newFestivalDetail(event *domain.FestivalEvent) FestivalDetail {
	return FestivalDetail{
		ID:                 event.ID,
		OrganizerProfileID: event.OrganizerProfileID,
		Title:              event.Title,
		Description:        event.Description,
		Country:            event.Country,
		City:               event.City,
		VenueName:          event.VenueName,
		StartDate:          event.StartDate.Format(dateLayout),
		EndDate:            event.EndDate.Format(dateLayout),
		WebsiteURL:         event.WebsiteURL,
		TicketURL:          event.TicketURL,
		IsPublished:        event.IsPublished,
		CreatedAt:          event.CreatedAt,
	}
}

func newPagedFestivalsResponse(paged *service.PagedFestivals) PagedFestivalsResponse {
	items := make([]FestivalListItem, 0, len(paged.Items))
	for _, event := range paged.Items {
		items = append(items, newFestivalListItem(event))
	}
	return PagedFestivalsResponse{
		Items:      items,
		TotalCount: paged.TotalCount,
		Page:       paged.Page,
		PageSize:   paged.PageSize,
	}
}
