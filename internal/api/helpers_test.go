package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/festivore/festival-api/internal/api/shared"
	"github.com/festivore/festival-api/internal/mocks"
	"github.com/festivore/festival-api/internal/service"
	"github.com/festivore/festival-api/internal/service/auth"
	"github.com/festivore/festival-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testAuthService builds an AuthService over mocks with a pass-through
// transaction runner.
func testAuthService(
	users *mocks.MockUserStore,
	profiles *mocks.MockOrganizerProfileStore,
	tokens *mocks.MockTokenService,
) *service.AuthService {
	passthroughTx := func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return service.NewAuthService(
		passthroughTx,
		users,
		profiles,
		tokens,
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{},
		testLogger(),
	)
}

func testFestivalService(
	festivals *mocks.MockFestivalStore,
	profiles *mocks.MockOrganizerProfileStore,
) *service.FestivalService {
	return service.NewFestivalService(festivals, service.NewOrganizerService(profiles), testLogger())
}

// withIdentity stamps a verified identity onto the request the way the
// authentication middleware would.
func withIdentity(r *http.Request, identity auth.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), shared.IdentityContextKey, identity)
	return r.WithContext(ctx)
}

// withRouteParam injects a chi URL parameter for handlers called outside
// a router.
func withRouteParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func decodeProblem(t *testing.T, recorder *httptest.ResponseRecorder) shared.Problem {
	t.Helper()
	var problem shared.Problem
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&problem))
	return problem
}
