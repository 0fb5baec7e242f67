package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/festivals", nil)

	RespondWithJSON(recorder, req, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "abc", body["id"])
}

func TestRespondWithProblem(t *testing.T) {
	t.Parallel()

	t.Run("includes trace ID from the request context", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("GET", "/api/festivals", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		recorder := httptest.NewRecorder()

		RespondWithProblem(recorder, req, http.StatusNotFound, "Not Found", "Festival not found.")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "application/problem+json", recorder.Header().Get("Content-Type"))

		var problem Problem
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&problem))
		assert.Equal(t, http.StatusNotFound, problem.Status)
		assert.Equal(t, "Not Found", problem.Title)
		assert.Equal(t, "Festival not found.", problem.Detail)
		assert.Equal(t, GetTraceID(req.Context()), problem.TraceID)
		assert.Nil(t, problem.Errors)
	})

	t.Run("field problems carry the error map", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("POST", "/api/auth/register", nil)
		recorder := httptest.NewRecorder()

		fields := map[string][]string{"email": {"Must be a valid email address."}}
		RespondWithFieldProblem(recorder, req, http.StatusBadRequest, "Validation failed", "One or more fields are invalid.", fields)

		var problem Problem
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&problem))
		assert.Equal(t, fields, problem.Errors)
	})

	t.Run("logged errors stay out of the body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("GET", "/api/festivals", nil)
		recorder := httptest.NewRecorder()

		RespondWithProblemAndLog(recorder, req, http.StatusInternalServerError,
			"Internal Server Error", "An unexpected error occurred.",
			assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
	})
}
