package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/mocks"
	"github.com/festivore/festival-api/internal/service/auth"
)

// festivalFixture bundles the stores, handler and a seeded organizer the
// festival endpoint tests share.
type festivalFixture struct {
	festivals *mocks.MockFestivalStore
	profiles  *mocks.MockOrganizerProfileStore
	handler   *FestivalHandler
	identity  auth.Identity
	profileID uuid.UUID
}

func newFestivalFixture(t *testing.T) *festivalFixture {
	t.Helper()
	festivals := mocks.NewMockFestivalStore()
	profiles := mocks.NewMockOrganizerProfileStore()

	userID := uuid.New()
	profile, err := domain.NewOrganizerProfile(userID, "Bachata Events", "", "")
	require.NoError(t, err)
	profiles.Profiles[userID] = profile

	return &festivalFixture{
		festivals: festivals,
		profiles:  profiles,
		handler:   NewFestivalHandler(testFestivalService(festivals, profiles)),
		identity: auth.Identity{
			UserID: userID,
			Email:  "organizer@example.com",
			Role:   domain.RoleOrganizer,
		},
		profileID: profile.ID,
	}
}

func (f *festivalFixture) seedFestival(t *testing.T, ownerID uuid.UUID, published bool) *domain.FestivalEvent {
	t.Helper()
	event, err := domain.NewFestivalEvent(ownerID, domain.FestivalDetails{
		Title:     "Berlin Bachata Festival",
		Country:   "Germany",
		City:      "Berlin",
		StartDate: time.Date(2026, time.October, 9, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.October, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	event.SetPublished(published)
	f.festivals.Festivals[event.ID] = event
	return event
}

func festivalPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":     "Berlin Bachata Festival",
		"country":   "Germany",
		"city":      "Berlin",
		"startDate": "2026-10-09",
		"endDate":   "2026-10-11",
	}
}

func TestFestivalList(t *testing.T) {
	t.Parallel()

	t.Run("returns published festivals with normalized paging", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		fixture.seedFestival(t, fixture.profileID, true)
		fixture.seedFestival(t, fixture.profileID, false)

		req := httptest.NewRequest("GET", "/api/festivals?page=0&pageSize=200", nil)
		recorder := httptest.NewRecorder()
		fixture.handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp PagedFestivalsResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))

		assert.Len(t, resp.Items, 1, "drafts are not publicly listed")
		assert.Equal(t, 1, resp.TotalCount)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 50, resp.PageSize, "oversized page size is clamped")
	})

	t.Run("passes filters through to the store", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)

		req := httptest.NewRequest("GET",
			"/api/festivals?country=Germany&q=bachata&startDate=2026-06-01&endDate=2026-06-30&sortBy=StartDateDesc", nil)
		recorder := httptest.NewRecorder()
		fixture.handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, fixture.festivals.LastListFilter.Country)
		assert.Equal(t, "Germany", *fixture.festivals.LastListFilter.Country)
		require.NotNil(t, fixture.festivals.LastListFilter.Search)
		assert.Equal(t, "bachata", *fixture.festivals.LastListFilter.Search)
		require.NotNil(t, fixture.festivals.LastListFilter.StartDate)
		assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), *fixture.festivals.LastListFilter.StartDate)
	})

	t.Run("rejects malformed query values", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)

		tests := []struct {
			name   string
			target string
			field  string
		}{
			{"bad start date", "/api/festivals?startDate=June-1st", "startDate"},
			{"bad page", "/api/festivals?page=abc", "page"},
			{"bad page size", "/api/festivals?pageSize=ten", "pageSize"},
			{"unknown sort", "/api/festivals?sortBy=Alphabetical", "sortBy"},
			{"inverted range", "/api/festivals?startDate=2026-06-30&endDate=2026-06-01", "endDate"},
		}

		for _, tt := range tests {

			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				recorder := httptest.NewRecorder()
				fixture.handler.List(recorder, httptest.NewRequest("GET", tt.target, nil))

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				problem := decodeProblem(t, recorder)
				assert.Contains(t, problem.Errors, tt.field)
			})
		}
	})
}

func TestFestivalGet(t *testing.T) {
	t.Parallel()

	t.Run("returns published festival", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, fixture.profileID, true)

		req := withRouteParam(httptest.NewRequest("GET", "/api/festivals/"+event.ID.String(), nil), "id", event.ID.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Get(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp FestivalDetail
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, event.ID, resp.ID)
		assert.Equal(t, "2026-10-09", resp.StartDate)
		assert.Equal(t, "2026-10-11", resp.EndDate)
	})

	t.Run("draft and missing festivals are both 404", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		draft := fixture.seedFestival(t, fixture.profileID, false)

		for _, id := range []uuid.UUID{draft.ID, uuid.New()} {
			req := withRouteParam(httptest.NewRequest("GET", "/api/festivals/"+id.String(), nil), "id", id.String())
			recorder := httptest.NewRecorder()
			fixture.handler.Get(recorder, req)
			assert.Equal(t, http.StatusNotFound, recorder.Code)
		}
	})

	t.Run("malformed id is a validation failure", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)

		req := withRouteParam(httptest.NewRequest("GET", "/api/festivals/not-a-uuid", nil), "id", "not-a-uuid")
		recorder := httptest.NewRecorder()
		fixture.handler.Get(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestFestivalCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates unpublished festival with location header", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)

		req := withIdentity(postJSON(t, "/api/festivals", festivalPayload()), fixture.identity)
		recorder := httptest.NewRecorder()
		fixture.handler.Create(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)
		var resp FestivalDetail
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))

		assert.False(t, resp.IsPublished, "new festivals start as drafts")
		assert.Equal(t, fixture.profileID, resp.OrganizerProfileID)
		assert.Equal(t, "/api/festivals/"+resp.ID.String(), recorder.Header().Get("Location"))
		assert.Contains(t, fixture.festivals.Festivals, resp.ID)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)

		recorder := httptest.NewRecorder()
		fixture.handler.Create(recorder, postJSON(t, "/api/festivals", festivalPayload()))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("caller without profile is forbidden", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		stranger := auth.Identity{UserID: uuid.New(), Email: "other@example.com", Role: domain.RoleOrganizer}

		req := withIdentity(postJSON(t, "/api/festivals", festivalPayload()), stranger)
		recorder := httptest.NewRecorder()
		fixture.handler.Create(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)

		tests := []struct {
			name   string
			mutate func(map[string]interface{})
			field  string
		}{
			{"missing title", func(p map[string]interface{}) { delete(p, "title") }, "title"},
			{"bad date format", func(p map[string]interface{}) { p["startDate"] = "09.10.2026" }, "startDate"},
			{"end before start", func(p map[string]interface{}) { p["endDate"] = "2026-10-01" }, "endDate"},
		}

		for _, tt := range tests {

			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				payload := festivalPayload()
				tt.mutate(payload)

				req := withIdentity(postJSON(t, "/api/festivals", payload), fixture.identity)
				recorder := httptest.NewRecorder()
				fixture.handler.Create(recorder, req)

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
				problem := decodeProblem(t, recorder)
				assert.Contains(t, problem.Errors, tt.field)
			})
		}
	})
}

func TestFestivalUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates owned festival", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, fixture.profileID, true)

		payload := festivalPayload()
		payload["title"] = "Renamed Festival"
		req := withRouteParam(withIdentity(postJSON(t, "/api/festivals/"+event.ID.String(), payload), fixture.identity), "id", event.ID.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Update(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp FestivalDetail
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Renamed Festival", resp.Title)
		assert.True(t, resp.IsPublished, "publication state survives updates")
	})

	t.Run("festival owned by someone else is forbidden", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, uuid.New(), true)

		req := withRouteParam(withIdentity(postJSON(t, "/api/festivals/"+event.ID.String(), festivalPayload()), fixture.identity), "id", event.ID.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Update(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing festival is not found", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		id := uuid.New()

		req := withRouteParam(withIdentity(postJSON(t, "/api/festivals/"+id.String(), festivalPayload()), fixture.identity), "id", id.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Update(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestFestivalDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes owned festival", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, fixture.profileID, false)

		req := withRouteParam(withIdentity(httptest.NewRequest("DELETE", "/api/festivals/"+event.ID.String(), nil), fixture.identity), "id", event.ID.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Delete(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.NotContains(t, fixture.festivals.Festivals, event.ID)
	})

	t.Run("refuses someone else's festival", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, uuid.New(), false)

		req := withRouteParam(withIdentity(httptest.NewRequest("DELETE", "/api/festivals/"+event.ID.String(), nil), fixture.identity), "id", event.ID.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Delete(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, fixture.festivals.Festivals, event.ID)
	})
}

func TestFestivalPublish(t *testing.T) {
	t.Parallel()

	publishRequest := func(t *testing.T, fixture *festivalFixture, id uuid.UUID, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		req := withRouteParam(withIdentity(postJSON(t, "/api/festivals/"+id.String()+"/publish", body), fixture.identity), "id", id.String())
		recorder := httptest.NewRecorder()
		fixture.handler.Publish(recorder, req)
		return recorder
	}

	t.Run("publishes and unpublishes", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, fixture.profileID, false)

		recorder := publishRequest(t, fixture, event.ID, map[string]interface{}{"isPublished": true})
		require.Equal(t, http.StatusOK, recorder.Code)
		var resp FestivalDetail
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.True(t, resp.IsPublished)

		recorder = publishRequest(t, fixture, event.ID, map[string]interface{}{"isPublished": false})
		require.Equal(t, http.StatusOK, recorder.Code)
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.False(t, resp.IsPublished)
	})

	t.Run("missing flag fails validation", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, fixture.profileID, false)

		recorder := publishRequest(t, fixture, event.ID, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, event.IsPublished)
	})

	t.Run("draft stays hidden until published", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		event := fixture.seedFestival(t, fixture.profileID, false)

		get := func() int {
			req := withRouteParam(httptest.NewRequest("GET", "/api/festivals/"+event.ID.String(), nil), "id", event.ID.String())
			recorder := httptest.NewRecorder()
			fixture.handler.Get(recorder, req)
			return recorder.Code
		}

		assert.Equal(t, http.StatusNotFound, get())

		recorder := publishRequest(t, fixture, event.ID, map[string]interface{}{"isPublished": true})
		require.Equal(t, http.StatusOK, recorder.Code)

		assert.Equal(t, http.StatusOK, get())
	})
}

func TestOrganizerMyFestivals(t *testing.T) {
	t.Parallel()

	t.Run("lists own festivals including drafts", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		fixture.seedFestival(t, fixture.profileID, true)
		fixture.seedFestival(t, fixture.profileID, false)
		fixture.seedFestival(t, uuid.New(), true)
		handler := NewOrganizerHandler(testFestivalService(fixture.festivals, fixture.profiles))

		req := withIdentity(httptest.NewRequest("GET", "/api/organizers/me/festivals", nil), fixture.identity)
		recorder := httptest.NewRecorder()
		handler.MyFestivals(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var items []FestivalListItem
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&items))
		assert.Len(t, items, 2)
	})

	t.Run("caller without profile is forbidden", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		handler := NewOrganizerHandler(testFestivalService(fixture.festivals, fixture.profiles))
		stranger := auth.Identity{UserID: uuid.New(), Email: "other@example.com", Role: domain.RoleOrganizer}

		req := withIdentity(httptest.NewRequest("GET", "/api/organizers/me/festivals", nil), stranger)
		recorder := httptest.NewRecorder()
		handler.MyFestivals(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		t.Parallel()
		fixture := newFestivalFixture(t)
		handler := NewOrganizerHandler(testFestivalService(fixture.festivals, fixture.profiles))

		recorder := httptest.NewRecorder()
		handler.MyFestivals(recorder, httptest.NewRequest("GET", "/api/organizers/me/festivals", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
