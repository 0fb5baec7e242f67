package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivore/festival-api/internal/domain"
	"github.com/festivore/festival-api/internal/mocks"
	"github.com/festivore/festival-api/internal/service/auth"
)

func postJSON(t *testing.T, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantField  string
	}{
		{
			name: "valid user registration",
			payload: map[string]interface{}{
				"email":    "user@example.com",
				"password": "password123",
				"role":     "user",
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "valid organizer registration",
			payload: map[string]interface{}{
				"email":    "organizer@example.com",
				"password": "password123",
				"role":     "organizer",
				"organizer": map[string]interface{}{
					"displayName": "Bachata Events",
					"website":     "https://bachata.example",
				},
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"password": "password123",
				"role":     "user",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "user@example.com",
				"password": "short12",
				"role":     "user",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "password",
		},
		{
			name: "unknown role",
			payload: map[string]interface{}{
				"email":    "user@example.com",
				"password": "password123",
				"role":     "admin",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "role",
		},
		{
			name: "organizer role without organizer fields",
			payload: map[string]interface{}{
				"email":    "organizer@example.com",
				"password": "password123",
				"role":     "organizer",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "organizer",
		},
		{
			name: "organizer fields without display name",
			payload: map[string]interface{}{
				"email":    "organizer@example.com",
				"password": "password123",
				"role":     "organizer",
				"organizer": map[string]interface{}{
					"website": "https://bachata.example",
				},
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "organizer.displayName",
		},
		{
			name: "missing payload fields",
			payload: map[string]interface{}{
				"email": "user@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := NewAuthHandler(testAuthService(
				mocks.NewMockUserStore(),
				mocks.NewMockOrganizerProfileStore(),
				mocks.NewMockTokenService(),
			))

			recorder := httptest.NewRecorder()
			handler.Register(recorder, postJSON(t, "/api/auth/register", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, recorder.Body.String())
			}
			if tt.wantField != "" {
				problem := decodeProblem(t, recorder)
				assert.Equal(t, http.StatusBadRequest, problem.Status)
				assert.Contains(t, problem.Errors, tt.wantField)
			}
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		existing, err := domain.NewUser("taken@example.com", "password123", domain.RoleUser)
		require.NoError(t, err)
		users.Users[existing.Email] = existing

		handler := NewAuthHandler(testAuthService(users,
			mocks.NewMockOrganizerProfileStore(), mocks.NewMockTokenService()))

		recorder := httptest.NewRecorder()
		handler.Register(recorder, postJSON(t, "/api/auth/register", map[string]interface{}{
			"email":    "taken@example.com",
			"password": "password123",
			"role":     "user",
		}))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		problem := decodeProblem(t, recorder)
		assert.Contains(t, problem.Errors, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(testAuthService(
			mocks.NewMockUserStore(),
			mocks.NewMockOrganizerProfileStore(),
			mocks.NewMockTokenService(),
		))

		req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString("{not json"))
		recorder := httptest.NewRecorder()
		handler.Register(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	seedUser := func(t *testing.T, users *mocks.MockUserStore, email string, role domain.Role) *domain.User {
		t.Helper()
		user, err := domain.NewUser(email, "password123", role)
		require.NoError(t, err)
		user.HashedPassword = "hashed:password123"
		user.Password = ""
		users.Users[email] = user
		return user
	}

	t.Run("valid credentials return token and identity", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user := seedUser(t, users, "organizer@example.com", domain.RoleOrganizer)

		profiles := mocks.NewMockOrganizerProfileStore()
		profile, err := domain.NewOrganizerProfile(user.ID, "Bachata Events", "", "")
		require.NoError(t, err)
		profiles.Profiles[user.ID] = profile

		handler := NewAuthHandler(testAuthService(users, profiles, mocks.NewMockTokenService()))

		recorder := httptest.NewRecorder()
		handler.Login(recorder, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    "organizer@example.com",
			"password": "password123",
		}))

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp AuthResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "mock-token", resp.Token)
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "organizer@example.com", resp.Email)
		assert.Equal(t, "organizer", resp.Role)
		require.NotNil(t, resp.OrganizerProfileID)
		assert.Equal(t, profile.ID, *resp.OrganizerProfileID)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("unknown email and wrong password yield the same response", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		seedUser(t, users, "user@example.com", domain.RoleUser)
		handler := NewAuthHandler(testAuthService(users,
			mocks.NewMockOrganizerProfileStore(), mocks.NewMockTokenService()))

		unknown := httptest.NewRecorder()
		handler.Login(unknown, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "password123",
		}))

		wrong := httptest.NewRecorder()
		handler.Login(wrong, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    "user@example.com",
			"password": "not-the-password",
		}))

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)

		unknownProblem := decodeProblem(t, unknown)
		wrongProblem := decodeProblem(t, wrong)
		assert.Equal(t, unknownProblem.Detail, wrongProblem.Detail)
		assert.Equal(t, "Invalid credentials.", wrongProblem.Detail)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(testAuthService(
			mocks.NewMockUserStore(),
			mocks.NewMockOrganizerProfileStore(),
			mocks.NewMockTokenService(),
		))

		recorder := httptest.NewRecorder()
		handler.Login(recorder, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email": "user@example.com",
		}))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		problem := decodeProblem(t, recorder)
		assert.Contains(t, problem.Errors, "password")
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("returns identity of authenticated caller", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user, err := domain.NewUser("user@example.com", "password123", domain.RoleUser)
		require.NoError(t, err)
		users.Users[user.Email] = user

		handler := NewAuthHandler(testAuthService(users,
			mocks.NewMockOrganizerProfileStore(), mocks.NewMockTokenService()))

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req = withIdentity(req, auth.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   domain.RoleUser,
		})

		recorder := httptest.NewRecorder()
		handler.Me(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var resp MeResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "user@example.com", resp.Email)
		assert.Equal(t, "user", resp.Role)
		assert.Nil(t, resp.OrganizerProfileID)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(testAuthService(
			mocks.NewMockUserStore(),
			mocks.NewMockOrganizerProfileStore(),
			mocks.NewMockTokenService(),
		))

		recorder := httptest.NewRecorder()
		handler.Me(recorder, httptest.NewRequest("GET", "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("deleted user is unauthorized", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(testAuthService(
			mocks.NewMockUserStore(),
			mocks.NewMockOrganizerProfileStore(),
			mocks.NewMockTokenService(),
		))

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req = withIdentity(req, auth.Identity{
			UserID: uuid.New(),
			Email:  "ghost@example.com",
			Role:   domain.RoleUser,
		})

		recorder := httptest.NewRecorder()
		handler.Me(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
