package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendingRow is one line of the monthly spending form.
type SpendingRow struct {
	Category string `json:"category"`
	Amount   Amount `json:"amount"`
}

type BudgetInput struct {
	Rows []SpendingRow `json:"rows"`
}

// BudgetEntry mirrors a row of budget_entries.
type BudgetEntry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AISuggestion mirrors a row of ai_suggestions.
type AISuggestion struct {
	ID              string          `json:"id"`
	UserID          string          `json:"-"`
	SuggestionText  string          `json:"suggestionText"`
	SpendingSummary string          `json:"spendingSummary"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type CategoryShare struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  float64         `json:"percent"`
}

type BudgetAnalysis struct {
	Entries    []BudgetEntry   `json:"entries"`
	Total      decimal.Decimal `json:"total"`
	Breakdown  []CategoryShare `json:"breakdown"`
	Summary    string          `json:"spendingSummary"`
	Suggestion string          `json:"suggestion,omitempty"`
}
