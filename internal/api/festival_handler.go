package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/festivore/festival-api/internal/api/middleware"
	"github.com/festivore/festival-api/internal/api/shared"
	"github.com/festivore/festival-api/internal/service"
	"github.com/festivore/festival-api/internal/store"
)

// FestivalHandler handles festival-related API requests: the public
// listing and detail views plus the organizer-gated mutations.
type FestivalHandler struct {
	festivals *service.FestivalService
	validator *validator.Validate
}

// NewFestivalHandler creates a new FestivalHandler with the given dependencies.
func NewFestivalHandler(festivals *service.FestivalService) *FestivalHandler {
	return &FestivalHandler{
		festivals: festivals,
		validator: validator.New(),
	}
}

// List handles GET /festivals (anonymous).
func (h *FestivalHandler) List(w http.ResponseWriter, r *http.Request) {
	startDate, err := queryDate(r, "startDate")
	if err != nil {
		HandleError(w, r, err)
		return
	}
	endDate, err := queryDate(r, "endDate")
	if err != nil {
		HandleError(w, r, err)
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		HandleError(w, r, err)
		return
	}
	pageSize, err := queryInt(r, "pageSize")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	query := service.FestivalQuery{
		Country:   r.URL.Query().Get("country"),
		StartDate: startDate,
		EndDate:   endDate,
		Search:    r.URL.Query().Get("q"),
		SortBy:    store.FestivalSort(r.URL.Query().Get("sortBy")),
		Page:      page,
		PageSize:  pageSize,
	}

	result, err := h.festivals.ListPublished(r.Context(), query)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newPagedFestivalsResponse(result))
}

// Get handles GET /festivals/{id} (anonymous).
// Unpublished festivals 404 just like missing ones.
func (h *FestivalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	event, err := h.festivals.GetPublishedByID(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newFestivalDetail(event))
}

// Create handles POST /festivals (organizer only).
// The festival starts unpublished; the Location header points at the
// public detail route it will occupy once published.
func (h *FestivalHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")
		return
	}

	var req FestivalPayload
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "Invalid request format.")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		ValidationProblem(w, r, err)
		return
	}

	details, err := req.details()
	if err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", err.Error())
		return
	}

	event, err := h.festivals.Create(r.Context(), identity.UserID, details)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/festivals/"+event.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, newFestivalDetail(event))
}

// Update handles PUT /festivals/{id} (organizer only).
func (h *FestivalHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req FestivalPayload
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "Invalid request format.")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		ValidationProblem(w, r, err)
		return
	}

	details, err := req.details()
	if err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", err.Error())
		return
	}

	event, err := h.festivals.Update(r.Context(), identity.UserID, id, details)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newFestivalDetail(event))
}

// Delete handles DELETE /festivals/{id} (organizer only).
func (h *FestivalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.festivals.Delete(r.Context(), identity.UserID, id); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Publish handles PATCH /festivals/{id}/publish (organizer only).
func (h *FestivalHandler) Publish(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithProblem(w, r, http.StatusUnauthorized,
			"Unauthorized", "Authentication required.")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req PublishRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithProblem(w, r, http.StatusBadRequest,
			"Validation failed", "Invalid request format.")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		ValidationProblem(w, r, err)
		return
	}

	event, err := h.festivals.SetPublish(r.Context(), identity.UserID, id, *req.IsPublished)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newFestivalDetail(event))
}
