package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finlear/domain"
	"finlear/repository"
)

// SuggestionFallback is shown when the assistant cannot be reached.
const SuggestionFallback = "Unable to generate suggestions at the moment. Please try again later."

// BudgetAdvisor produces spending advice. AIService implements it.
type BudgetAdvisor interface {
	BudgetAdvice(ctx context.Context, spendingSummary, total string) (string, error)
}

type BudgetService struct {
	logger  log.Logger
	repo    repository.BudgetRepository
	advisor BudgetAdvisor
	now     func() time.Time
}

func NewBudgetService(logger log.Logger, repo repository.BudgetRepository, advisor BudgetAdvisor) *BudgetService {
	return &BudgetService{
		logger:  logger.With("module", "budget"),
		repo:    repo,
		advisor: advisor,
		now:     time.Now,
	}
}

// SubmitBudget replaces the user's spending entries and asks for advice on
// them. An advisor failure is not an error; the fallback text is returned
// and no suggestion is stored.
func (s *BudgetService) SubmitBudget(ctx context.Context, userID string, input domain.BudgetInput) (domain.BudgetAnalysis, error) {
	if len(input.Rows) > MaxBudgetRows {
		return domain.BudgetAnalysis{}, invalid("at most %d spending rows are allowed", MaxBudgetRows)
	}

	now := s.now().UTC()
	entries := make([]domain.BudgetEntry, 0, len(input.Rows))
	for _, row := range input.Rows {
		category := strings.TrimSpace(row.Category)
		value := row.Amount.Float64()
		if math.IsNaN(value) || math.IsInf(value, 0) || value > MaxLoanAmount {
			return domain.BudgetAnalysis{}, invalid("amount for %q is not a valid number", category)
		}
		amount := decimal.NewFromFloat(value)
		if amount.IsNegative() {
			return domain.BudgetAnalysis{}, invalid("amount for %q must not be negative", category)
		}
		if category == "" || !amount.IsPositive() {
			continue
		}
		entries = append(entries, domain.BudgetEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			Category:  category,
			Amount:    amount,
			CreatedAt: now,
		})
	}
	if len(entries) == 0 {
		return domain.BudgetAnalysis{}, invalid("please add at least one spending category with amount")
	}

	if err := s.repo.ReplaceEntries(ctx, userID, entries); err != nil {
		return domain.BudgetAnalysis{}, fmt.Errorf("save budget: %w", err)
	}

	analysis := analyze(entries)

	suggestion, err := s.advisor.BudgetAdvice(ctx, analysis.Summary, analysis.Total.String())
	if err != nil {
		s.logger.Warn("failed to get budget advice", "user", userID, "error", err)
		analysis.Suggestion = SuggestionFallback
		return analysis, nil
	}
	analysis.Suggestion = suggestion

	err = s.repo.SaveSuggestion(ctx, domain.AISuggestion{
		ID:              uuid.NewString(),
		UserID:          userID,
		SuggestionText:  suggestion,
		SpendingSummary: analysis.Summary,
		TotalAmount:     analysis.Total,
		CreatedAt:       now,
	})
	if err != nil {
		s.logger.Warn("failed to save ai suggestion", "user", userID, "error", err)
	}
	return analysis, nil
}

// GetBudget returns the stored entries and the latest suggestion, if any.
func (s *BudgetService) GetBudget(ctx context.Context, userID string) (domain.BudgetAnalysis, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return domain.BudgetAnalysis{}, fmt.Errorf("load budget: %w", err)
	}
	analysis := analyze(entries)

	suggestion, ok, err := s.repo.LatestSuggestion(ctx, userID)
	if err != nil {
		return domain.BudgetAnalysis{}, fmt.Errorf("load suggestion: %w", err)
	}
	if ok {
		analysis.Suggestion = suggestion.SuggestionText
	}
	return analysis, nil
}

// analyze totals entries and splits the total by category, keeping the
// order in which categories first appear.
func analyze(entries []domain.BudgetEntry) domain.BudgetAnalysis {
	total := decimal.Zero
	parts := make([]string, 0, len(entries))
	byCategory := map[string]int{}
	breakdown := []domain.CategoryShare{}

	for _, e := range entries {
		total = total.Add(e.Amount)
		parts = append(parts, fmt.Sprintf("%s: ₹%s", e.Category, e.Amount.String()))
		if i, ok := byCategory[e.Category]; ok {
			breakdown[i].Amount = breakdown[i].Amount.Add(e.Amount)
			continue
		}
		byCategory[e.Category] = len(breakdown)
		breakdown = append(breakdown, domain.CategoryShare{Category: e.Category, Amount: e.Amount})
	}

	if total.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range breakdown {
			breakdown[i].Percent = breakdown[i].Amount.Div(total).Mul(hundred).Round(2).InexactFloat64()
		}
	}

	if entries == nil {
		entries = []domain.BudgetEntry{}
	}
	return domain.BudgetAnalysis{
		Entries:   entries,
		Total:     total,
		Breakdown: breakdown,
		Summary:   strings.Join(parts, ", "),
	}
}
