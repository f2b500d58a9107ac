package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"finlear/repository"
	"finlear/service"
)

type testAPI struct {
	handler http.Handler
	limiter *RateLimiter
}

// newTestAPI wires the router over in-memory stores. gatewayURL and
// videoURL may be empty, in which case the AI and video features are
// unconfigured.
func newTestAPI(t *testing.T, gatewayURL, videoURL string, limit int) *testAPI {
	t.Helper()
	logger := log.NewNopLogger()
	cache := repository.NewMemoryCache()

	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	aiKey := ""
	if gatewayURL != "" {
		aiKey = "test-key"
	}
	ytKey := ""
	if videoURL != "" {
		ytKey = "yt-key"
	}
	ai := service.NewAIService(logger, service.AIConfig{APIKey: aiKey, URL: gatewayURL}, cache)
	videos := service.NewVideoService(logger, ytKey, videoURL, cache)

	var limiter *RateLimiter
	if limit > 0 {
		limiter = NewRateLimiter(limit, time.Minute)
		t.Cleanup(limiter.Stop)
	}

	h := NewRouter(Handlers{
		Loan:   NewLoanHandler(service.NewLoanService(logger, repository.NewLoanRepositoryMemory(10), 0), logger),
		Term:   NewTermRecommendationHandler(service.NewTermRecommendationService(logger, ai), logger),
		Payoff: NewPayoffHandler(service.NewPayoffService(logger, ai), logger),
		Tracker: NewLoanTrackerHandler(
			service.NewLoanTrackerService(logger, repository.NewTrackedLoanRepositoryMemory()), logger),
		Budget: NewBudgetHandler(
			service.NewBudgetService(logger, repository.NewBudgetRepositorySQLite(db), ai), logger),
		Learning: NewLearningHandler(
			service.NewLearningService(logger, repository.NewCacheStateStore(cache), ai, ai, videos), logger),
		Functions: NewFunctionsHandler(ai, videos, logger),
	}, limiter, logger)

	return &testAPI{handler: h, limiter: limiter}
}

func (a *testAPI) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, "", "", 0)
	w := api.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, "", "", 0)

	req := httptest.NewRequest(http.MethodOptions, "/functions/chat", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-user-id")
	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, http.MethodPost, w.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type, X-User-Id", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPreflightRejectsUnknownHeader(t *testing.T) {
	api := newTestAPI(t, "", "", 0)

	req := httptest.NewRequest(http.MethodOptions, "/loans", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "x-secret")
	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)

	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSActualRequest(t *testing.T) {
	api := newTestAPI(t, "", "", 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	api.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUserRoutesRequireHeader(t *testing.T) {
	api := newTestAPI(t, "", "", 0)
	for _, path := range []string{"/loans", "/budget", "/learning/state"} {
		w := api.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t, "", "", 0)
	w := api.do(t, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
