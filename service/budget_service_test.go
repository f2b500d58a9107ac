package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"cosmossdk.io/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"finlear/domain"
)

type MockBudgetRepository struct {
	entries     map[string][]domain.BudgetEntry
	suggestions []domain.AISuggestion
	ForceError  bool
}

func newMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{entries: map[string][]domain.BudgetEntry{}}
}

func (m *MockBudgetRepository) ReplaceEntries(_ context.Context, userID string, entries []domain.BudgetEntry) error {
	if m.ForceError {
		return errors.New("db down")
	}
	m.entries[userID] = entries
	return nil
}

func (m *MockBudgetRepository) ListEntries(_ context.Context, userID string) ([]domain.BudgetEntry, error) {
	return m.entries[userID], nil
}

func (m *MockBudgetRepository) SaveSuggestion(_ context.Context, s domain.AISuggestion) error {
	m.suggestions = append(m.suggestions, s)
	return nil
}

func (m *MockBudgetRepository) LatestSuggestion(_ context.Context, userID string) (domain.AISuggestion, bool, error) {
	for i := len(m.suggestions) - 1; i >= 0; i-- {
		if m.suggestions[i].UserID == userID {
			return m.suggestions[i], true, nil
		}
	}
	return domain.AISuggestion{}, false, nil
}

type stubAdvisor struct {
	text    string
	err     error
	summary string
	total   string
}

func (a *stubAdvisor) BudgetAdvice(_ context.Context, summary, total string) (string, error) {
	a.summary, a.total = summary, total
	return a.text, a.err
}

func TestSubmitBudget(t *testing.T) {
	repo := newMockBudgetRepository()
	advisor := &stubAdvisor{text: "Cut dining out."}
	svc := NewBudgetService(log.NewNopLogger(), repo, advisor)

	analysis, err := svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
		{Category: "Rent", Amount: 15000},
		{Category: "", Amount: 500},
		{Category: "Food", Amount: 0},
		{Category: "Food", Amount: 4000},
		{Category: "Food", Amount: 1000},
	}})
	require.NoError(t, err)

	require.Len(t, analysis.Entries, 3)
	require.True(t, decimal.NewFromInt(20000).Equal(analysis.Total))
	require.Equal(t, "Rent: ₹15000, Food: ₹4000, Food: ₹1000", analysis.Summary)
	require.Equal(t, "Cut dining out.", analysis.Suggestion)
	require.Equal(t, analysis.Summary, advisor.summary)
	require.Equal(t, "20000", advisor.total)

	require.Len(t, analysis.Breakdown, 2)
	require.Equal(t, "Rent", analysis.Breakdown[0].Category)
	require.Equal(t, 75.0, analysis.Breakdown[0].Percent)
	require.Equal(t, 25.0, analysis.Breakdown[1].Percent)

	require.Len(t, repo.entries["u1"], 3)
	require.Len(t, repo.suggestions, 1)
	require.Equal(t, "u1", repo.suggestions[0].UserID)
}

func TestSubmitBudgetAdvisorFailure(t *testing.T) {
	repo := newMockBudgetRepository()
	svc := NewBudgetService(log.NewNopLogger(), repo, &stubAdvisor{err: ErrRateLimited})

	analysis, err := svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
		{Category: "Rent", Amount: 100},
	}})
	require.NoError(t, err)
	require.Equal(t, SuggestionFallback, analysis.Suggestion)
	require.Empty(t, repo.suggestions)
	require.Len(t, repo.entries["u1"], 1)
}

func TestSubmitBudgetValidation(t *testing.T) {
	svc := NewBudgetService(log.NewNopLogger(), newMockBudgetRepository(), &stubAdvisor{})

	_, err := svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
		{Category: "Rent", Amount: -1},
	}})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
		{Category: " ", Amount: 10},
	}})
	require.ErrorIs(t, err, ErrValidation)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
			{Category: "Rent", Amount: domain.Amount(v)},
		}})
		require.ErrorIs(t, err, ErrValidation, "%v", v)
	}
}

func TestSubmitBudgetRepositoryError(t *testing.T) {
	repo := newMockBudgetRepository()
	repo.ForceError = true
	svc := NewBudgetService(log.NewNopLogger(), repo, &stubAdvisor{})

	_, err := svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
		{Category: "Rent", Amount: 100},
	}})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrValidation)
}

func TestGetBudget(t *testing.T) {
	repo := newMockBudgetRepository()
	svc := NewBudgetService(log.NewNopLogger(), repo, &stubAdvisor{text: "Save more."})

	empty, err := svc.GetBudget(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, empty.Entries)
	require.Empty(t, empty.Suggestion)
	require.True(t, empty.Total.IsZero())

	_, err = svc.SubmitBudget(context.Background(), "u1", domain.BudgetInput{Rows: []domain.SpendingRow{
		{Category: "Fun", Amount: 2500.5},
	}})
	require.NoError(t, err)

	got, err := svc.GetBudget(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	require.Equal(t, "Save more.", got.Suggestion)
	require.Equal(t, "2500.5", got.Total.String())
}
