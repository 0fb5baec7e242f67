package api

import (
	"net/http"

	"github.com/festivore/festival-api/internal/api/middleware"
	"github.com/festivore/festival-api/internal/api/shared"
	"github.com/festivore/festival-api/internal/service"
)

// OrganizerHandler handles organizer-scoped read endpoints.
type OrganizerHandler struct {
	festivals *service.FestivalService
}

// NewOrganizerHandler creates a new OrganizerHandler.
func NewOrganizerHandler(festivals *service.FestivalService) *OrganizerHandler {
	return &OrganizerHandler{festivals: festivals}
}

// MyFestivals handles GET /organizers/me/festivals (organizer only).
// Returns every festival the caller owns, drafts included, newest first.
func (h *OrganizerHandler) MyFestivals(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")
		return
	}

	events, err := h.festivals.ListMine(r.Context(), identity.UserID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	items := make([]FestivalListItem, 0, len(events))
	for _, event := range events {
		items = append(items, newFestivalListItem(event))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}
