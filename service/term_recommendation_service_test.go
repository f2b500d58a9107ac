package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"finlear/domain"
)

type stubExplainer struct {
	text         string
	err          error
	alternatives int
	plan         domain.PayoffPlan
}

func (s *stubExplainer) ExplainTerm(
	_ context.Context,
	_ domain.TermRecommendationInput,
	_ domain.TermOption,
	alternatives []domain.TermOption,
) (string, error) {
	s.alternatives = len(alternatives)
	return s.text, s.err
}

func (s *stubExplainer) ExplainPayoff(_ context.Context, plan domain.PayoffPlan, _ []domain.Debt) (string, error) {
	s.plan = plan
	return s.text, s.err
}

func termInput(pref domain.TermPreference) domain.TermRecommendationInput {
	return domain.TermRecommendationInput{
		Principal:         100000,
		InterestRate:      12,
		MinTermMonths:     12,
		MaxTermMonths:     24,
		MaxMonthlyPayment: 6000,
		Preference:        pref,
	}
}

func TestRecommendTerm_Balanced(t *testing.T) {

	service := NewTermRecommendationService(log.NewNopLogger(), nil)

	result, err := service.RecommendTerm(context.Background(), termInput(domain.PreferBalanced))

	require.NoError(t, err)
	if result.RecommendedTerm != 19 {
		t.Errorf("expected 19 months, got %d", result.RecommendedTerm)
	}
	if len(result.Options) != 6 {
		t.Fatalf("expected 6 affordable terms, got %d", len(result.Options))
	}
	if result.Options[0].MonthlyPayment != 5805.18 {
		t.Errorf("expected EMI 5805.18, got %.2f", result.Options[0].MonthlyPayment)
	}
	for _, opt := range result.Options {
		if opt.MonthlyPayment > 6000 {
			t.Errorf("term %d exceeds the cap: %.2f", opt.TermMonths, opt.MonthlyPayment)
		}
	}
	for i := 1; i < len(result.Options); i++ {
		if result.Options[i].Score > result.Options[i-1].Score {
			t.Fatalf("options are not sorted by score")
		}
	}
	if !strings.Contains(result.Explanation, "19-month") {
		t.Errorf("unexpected explanation %q", result.Explanation)
	}
}

func TestRecommendTerm_PreferenceShiftsTerm(t *testing.T) {

	service := NewTermRecommendationService(log.NewNopLogger(), nil)

	low, err := service.RecommendTerm(context.Background(), termInput(domain.PreferLowInterest))
	require.NoError(t, err)
	payment, err := service.RecommendTerm(context.Background(), termInput(domain.PreferLowPayment))
	require.NoError(t, err)

	if low.RecommendedTerm != 19 {
		t.Errorf("expected 19 months for lowest interest, got %d", low.RecommendedTerm)
	}
	if payment.RecommendedTerm <= low.RecommendedTerm {
		t.Errorf("expected a longer term for lowest payment, got %d", payment.RecommendedTerm)
	}
}

func TestRecommendTerm_CapFromIncome(t *testing.T) {

	service := NewTermRecommendationService(log.NewNopLogger(), nil)

	input := termInput("")
	input.MaxMonthlyPayment = 0
	input.Income = 20000

	result, err := service.RecommendTerm(context.Background(), input)

	require.NoError(t, err)
	if result.MaxMonthlyPayment != 20000*AffordableBelowPercent/100 {
		t.Errorf("unexpected cap %.2f", result.MaxMonthlyPayment)
	}
}

func TestRecommendTerm_Invalid(t *testing.T) {

	service := NewTermRecommendationService(log.NewNopLogger(), nil)

	tests := map[string]func(*domain.TermRecommendationInput){
		"zero principal":     func(in *domain.TermRecommendationInput) { in.Principal = 0 },
		"min above max":      func(in *domain.TermRecommendationInput) { in.MinTermMonths = 30 },
		"range too wide":     func(in *domain.TermRecommendationInput) { in.MinTermMonths = 1; in.MaxTermMonths = 200 },
		"unknown preference": func(in *domain.TermRecommendationInput) { in.Preference = "cheapest" },
		"no cap no income":   func(in *domain.TermRecommendationInput) { in.MaxMonthlyPayment = 0 },
		"nothing fits":       func(in *domain.TermRecommendationInput) { in.MaxMonthlyPayment = 100 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			input := termInput(domain.PreferBalanced)
			mutate(&input)
			_, err := service.RecommendTerm(context.Background(), input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecommendTerm_Explainer(t *testing.T) {

	explainer := &stubExplainer{text: "Take 19 months."}
	service := NewTermRecommendationService(log.NewNopLogger(), explainer)

	result, err := service.RecommendTerm(context.Background(), termInput(domain.PreferBalanced))

	require.NoError(t, err)
	require.Equal(t, "Take 19 months.", result.Explanation)
	require.Equal(t, maxExplainedAlternatives, explainer.alternatives)
}

func TestRecommendTerm_ExplainerFailureFallsBack(t *testing.T) {

	explainer := &stubExplainer{err: ErrGateway}
	service := NewTermRecommendationService(log.NewNopLogger(), explainer)

	result, err := service.RecommendTerm(context.Background(), termInput(domain.PreferBalanced))

	require.NoError(t, err)
	require.Equal(t, termFallback(domain.PreferBalanced, result.Options[0]), result.Explanation)
}

func TestTermScore_SingleTerm(t *testing.T) {

	input := termInput(domain.PreferBalanced)
	input.MinTermMonths = 24

	score := termScore(input, EMI(input.Principal, input.InterestRate, 24), 24)

	if score != 10 {
		t.Errorf("expected 10 for a single-term range, got %.2f", score)
	}
}
