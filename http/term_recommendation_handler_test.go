package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"finlear/domain"
)

const termBody = `{
	"principal": 100000,
	"annualRatePercent": 12,
	"minTermMonths": 12,
	"maxTermMonths": 24,
	"maxMonthlyPayment": 6000,
	"preference": "balanced"
}`

func TestRecommendTermHandler_OK(t *testing.T) {

	api := newTestAPI(t, "", "", 0)

	w := api.do(t, http.MethodPost, "/loan/recommend-term", "", termBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	result := decode[domain.TermRecommendationResult](t, w)
	if result.RecommendedTerm != 19 {
		t.Errorf("expected 19 months, got %d", result.RecommendedTerm)
	}
	if result.Explanation == "" {
		t.Errorf("expected a fallback explanation")
	}
}

func TestRecommendTermHandler_UsesGateway(t *testing.T) {

	gw := newFakeGateway(t, `{"choices":[{"message":{"role":"assistant","content":"Go with 19 months."}}]}`, http.StatusOK)
	api := newTestAPI(t, gw.URL, "", 0)

	w := api.do(t, http.MethodPost, "/loan/recommend-term", "", termBody)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Go with 19 months.", decode[domain.TermRecommendationResult](t, w).Explanation)
}

func TestRecommendTermHandler_GatewayDownStillAnswers(t *testing.T) {

	gw := newFakeGateway(t, `{}`, http.StatusInternalServerError)
	api := newTestAPI(t, gw.URL, "", 0)

	w := api.do(t, http.MethodPost, "/loan/recommend-term", "", termBody)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRecommendTermHandler_Invalid(t *testing.T) {

	api := newTestAPI(t, "", "", 0)

	w := api.do(t, http.MethodPost, "/loan/recommend-term", "", `{"principal": 100000, "minTermMonths": 12, "maxTermMonths": 24}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRecommendTermHandler_RateLimited(t *testing.T) {

	api := newTestAPI(t, "", "", 1)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/loan/recommend-term", "", termBody).Code)
	require.Equal(t, http.StatusTooManyRequests, api.do(t, http.MethodPost, "/loan/recommend-term", "", termBody).Code)
}
