package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"finlear/domain"
	"finlear/service"
)

func TestBudgetRoutes(t *testing.T) {
	gateway := newFakeGateway(t, chatBody(t, "Cook at home more often."), http.StatusOK)
	api := newTestAPI(t, gateway.URL, "", 0)

	w := api.do(t, http.MethodGet, "/budget", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[domain.BudgetAnalysis](t, w)
	require.Empty(t, empty.Entries)

	w = api.do(t, http.MethodPost, "/budget", "u1", `{"rows": [
		{"category": "Rent", "amount": "12000"},
		{"category": "Food", "amount": 3000},
		{"category": "", "amount": 50}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	analysis := decode[domain.BudgetAnalysis](t, w)
	require.Len(t, analysis.Entries, 2)
	require.Equal(t, "15000", analysis.Total.String())
	require.Equal(t, "Rent: ₹12000, Food: ₹3000", analysis.Summary)
	require.Equal(t, "Cook at home more often.", analysis.Suggestion)

	w = api.do(t, http.MethodGet, "/budget", "u1", nil)
	stored := decode[domain.BudgetAnalysis](t, w)
	require.Len(t, stored.Entries, 2)
	require.Equal(t, "Cook at home more often.", stored.Suggestion)

	w = api.do(t, http.MethodPost, "/budget", "u1", `{"rows": [{"category": "Rent", "amount": 0}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	for _, amount := range []string{`"NaN"`, `"Inf"`} {
		w = api.do(t, http.MethodPost, "/budget", "u1", `{"rows": [{"category": "Rent", "amount": `+amount+`}]}`)
		require.Equal(t, http.StatusBadRequest, w.Code, amount)
	}

	// The earlier budget is untouched.
	w = api.do(t, http.MethodGet, "/budget", "u1", nil)
	require.Len(t, decode[domain.BudgetAnalysis](t, w).Entries, 2)
}

func TestBudgetFallsBackWithoutGateway(t *testing.T) {
	api := newTestAPI(t, "", "", 0)

	w := api.do(t, http.MethodPost, "/budget", "u1", `{"rows": [{"category": "Rent", "amount": 100}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, service.SuggestionFallback, decode[domain.BudgetAnalysis](t, w).Suggestion)
}
