package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"finlear/domain"
)

const budgetSchema = `
CREATE TABLE IF NOT EXISTS budget_entries (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	category TEXT NOT NULL,
	amount TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_budget_entries_user ON budget_entries(user_id);

CREATE TABLE IF NOT EXISTS ai_suggestions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	suggestion_text TEXT NOT NULL,
	spending_summary TEXT NOT NULL,
	total_amount TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ai_suggestions_user ON ai_suggestions(user_id);
`

type BudgetRepositorySQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from being split across connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec(budgetSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

func NewBudgetRepositorySQLite(db *sql.DB) *BudgetRepositorySQLite {
	return &BudgetRepositorySQLite{db: db}
}

func (r *BudgetRepositorySQLite) ReplaceEntries(
	ctx context.Context,
	userID string,
	entries []domain.BudgetEntry,
) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin budget tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM budget_entries WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete budget entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO budget_entries (id, user_id, category, amount, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare budget insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err = stmt.ExecContext(ctx,
			e.ID, userID, e.Category, e.Amount.String(), e.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert budget entry %q: %w", e.Category, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit budget tx: %w", err)
	}
	return nil
}

func (r *BudgetRepositorySQLite) ListEntries(ctx context.Context, userID string) ([]domain.BudgetEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, amount, created_at FROM budget_entries WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budget entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.BudgetEntry{}
	for rows.Next() {
		var (
			e                 domain.BudgetEntry
			amount, createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Category, &amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan budget entry: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount of %s: %w", e.ID, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", e.ID, err)
		}
		e.UserID = userID
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *BudgetRepositorySQLite) SaveSuggestion(ctx context.Context, s domain.AISuggestion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_suggestions (id, user_id, suggestion_text, spending_summary, total_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.SuggestionText, s.SpendingSummary, s.TotalAmount.String(),
		s.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert ai suggestion: %w", err)
	}
	return nil
}

func (r *BudgetRepositorySQLite) LatestSuggestion(ctx context.Context, userID string) (domain.AISuggestion, bool, error) {
	var (
		s                domain.AISuggestion
		total, createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, suggestion_text, spending_summary, total_amount, created_at
		 FROM ai_suggestions WHERE user_id = ? ORDER BY rowid DESC LIMIT 1`, userID,
	).Scan(&s.ID, &s.SuggestionText, &s.SpendingSummary, &total, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AISuggestion{}, false, nil
	}
	if err != nil {
		return domain.AISuggestion{}, false, fmt.Errorf("query ai suggestion: %w", err)
	}
	if s.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return domain.AISuggestion{}, false, fmt.Errorf("parse total of %s: %w", s.ID, err)
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.AISuggestion{}, false, fmt.Errorf("parse created_at of %s: %w", s.ID, err)
	}
	s.UserID = userID
	return s, true, nil
}
