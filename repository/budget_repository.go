package repository

import (
	"context"

	"finlear/domain"
)

// BudgetRepository persists budget_entries and ai_suggestions.
type BudgetRepository interface {
	// ReplaceEntries deletes every entry of the user and inserts entries in
	// one transaction.
	ReplaceEntries(ctx context.Context, userID string, entries []domain.BudgetEntry) error
	ListEntries(ctx context.Context, userID string) ([]domain.BudgetEntry, error)
	SaveSuggestion(ctx context.Context, suggestion domain.AISuggestion) error
	LatestSuggestion(ctx context.Context, userID string) (domain.AISuggestion, bool, error)
}
