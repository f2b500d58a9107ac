package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"cosmossdk.io/log"

	"finlear/domain"
)

// PlanExplainer turns a computed plan into a short plain-language
// explanation. AIService implements it.
type PlanExplainer interface {
	ExplainTerm(ctx context.Context, input domain.TermRecommendationInput, best domain.TermOption, alternatives []domain.TermOption) (string, error)
	ExplainPayoff(ctx context.Context, plan domain.PayoffPlan, debts []domain.Debt) (string, error)
}

const maxExplainedAlternatives = 3

type TermRecommendationService struct {
	logger    log.Logger
	explainer PlanExplainer
}

func NewTermRecommendationService(logger log.Logger, explainer PlanExplainer) *TermRecommendationService {
	return &TermRecommendationService{
		logger:    logger.With("module", "term_recommendation"),
		explainer: explainer,
	}
}

func validateTermInput(input *domain.TermRecommendationInput) error {
	if err := validateLoan(domain.LoanInput{
		Amount:       input.Principal,
		InterestRate: input.InterestRate,
		TermMonths:   input.MaxTermMonths,
	}); err != nil {
		return err
	}
	if input.Principal <= 0 {
		return invalid("principal must be positive")
	}
	if input.MinTermMonths < MinTermMonths || input.MinTermMonths > input.MaxTermMonths {
		return invalid("minimum term must be between %d and the maximum term", MinTermMonths)
	}
	if input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths {
		return invalid("term range exceeds %d months", MaxTermRangeMonths)
	}
	if input.Preference == "" {
		input.Preference = domain.PreferBalanced
	}
	if !input.Preference.Valid() {
		return invalid("unknown preference %q", input.Preference)
	}
	if math.IsNaN(input.MaxMonthlyPayment) || input.MaxMonthlyPayment < 0 {
		return invalid("maximum monthly payment must not be negative")
	}
	if input.MaxMonthlyPayment == 0 {
		if input.Income <= 0 {
			return invalid("either maximum monthly payment or income is required")
		}
		input.MaxMonthlyPayment = input.Income * AffordableBelowPercent / 100
	}
	return nil
}

// RecommendTerm scores every term in the requested range whose EMI fits the
// payment cap and returns them best first.
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if err := validateTermInput(&input); err != nil {
		return domain.TermRecommendationResult{}, err
	}

	options := make([]domain.TermOption, 0, input.MaxTermMonths-input.MinTermMonths+1)
	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		emi := EMI(input.Principal, input.InterestRate, term)
		if roundTo2Decimals(emi) > input.MaxMonthlyPayment {
			continue
		}
		options = append(options, domain.TermOption{
			TermMonths:     term,
			MonthlyPayment: roundTo2Decimals(emi),
			TotalInterest:  roundTo2Decimals(emi*float64(term) - input.Principal),
			Score:          termScore(input, emi, term),
		})
	}
	if len(options) == 0 {
		return domain.TermRecommendationResult{}, invalid(
			"no term between %d and %d months keeps the EMI under %.2f",
			input.MinTermMonths, input.MaxTermMonths, input.MaxMonthlyPayment)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	best := options[0]
	result := domain.TermRecommendationResult{
		RecommendedTerm:   best.TermMonths,
		MaxMonthlyPayment: roundTo2Decimals(input.MaxMonthlyPayment),
		Options:           options,
		Explanation:       termFallback(input.Preference, best),
	}

	if s.explainer != nil {
		alternatives := options[1:min(len(options), maxExplainedAlternatives+1)]
		text, err := s.explainer.ExplainTerm(ctx, input, best, alternatives)
		if err != nil {
			s.logger.Warn("term explanation failed, using fallback", "error", err)
		} else if text != "" {
			result.Explanation = text
		}
	}
	return result, nil
}

// termScore rates a term from 0 to 10. Interest and payment are normalised
// between the shortest and longest term of the range; shorter terms get a
// small bonus of their own.
func termScore(input domain.TermRecommendationInput, emi float64, term int) float64 {
	shortEMI := EMI(input.Principal, input.InterestRate, input.MinTermMonths)
	longEMI := EMI(input.Principal, input.InterestRate, input.MaxTermMonths)
	minInterest := shortEMI*float64(input.MinTermMonths) - input.Principal
	maxInterest := longEMI*float64(input.MaxTermMonths) - input.Principal
	interest := emi*float64(term) - input.Principal

	normalise := func(v, lo, hi float64) float64 {
		if hi-lo <= 0 {
			return 10
		}
		return 10 * (1 - (v-lo)/(hi-lo))
	}
	interestScore := normalise(interest, minInterest, maxInterest)
	paymentScore := normalise(emi, longEMI, shortEMI)
	lengthScore := normalise(float64(term), float64(input.MinTermMonths), float64(input.MaxTermMonths))

	var score float64
	switch input.Preference {
	case domain.PreferLowInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*lengthScore
	case domain.PreferLowPayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*lengthScore
	default:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*lengthScore
	}
	return roundTo2Decimals(score)
}

func termFallback(pref domain.TermPreference, best domain.TermOption) string {
	switch pref {
	case domain.PreferLowInterest:
		return fmt.Sprintf("A %d-month term keeps total interest down to ₹%.2f, with an EMI of ₹%.2f. "+
			"Choose it if you can handle the higher monthly payment.",
			best.TermMonths, best.TotalInterest, best.MonthlyPayment)
	case domain.PreferLowPayment:
		return fmt.Sprintf("A %d-month term brings your EMI down to ₹%.2f, leaving more room in your monthly budget. "+
			"You will pay ₹%.2f in interest overall.",
			best.TermMonths, best.MonthlyPayment, best.TotalInterest)
	}
	return fmt.Sprintf("A %d-month term balances an EMI of ₹%.2f against ₹%.2f of total interest.",
		best.TermMonths, best.MonthlyPayment, best.TotalInterest)
}
