package repository

import (
	"sync"

	"finlear/domain"
)

type calculation struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
// History is capped at limit entries; the oldest are dropped first.
type LoanRepositoryMemory struct {
	mu    sync.Mutex
	data  []calculation
	limit int
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory(limit int) *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data:  []calculation{},
		limit: limit,
	}
}

// Save stores the loan result in memory.
func (r *LoanRepositoryMemory) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, calculation{Input: input, Result: result})
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// TrackedLoanRepositoryMemory keeps tracked loans per user in insertion order.
type TrackedLoanRepositoryMemory struct {
	mu    sync.RWMutex
	loans map[string][]domain.Loan
}

func NewTrackedLoanRepositoryMemory() *TrackedLoanRepositoryMemory {
	return &TrackedLoanRepositoryMemory{
		loans: make(map[string][]domain.Loan),
	}
}

// Add stores loan unless its owner already tracks limit loans. A limit of
// zero or less disables the check.
func (r *TrackedLoanRepositoryMemory) Add(loan domain.Loan, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > 0 && len(r.loans[loan.UserID]) >= limit {
		return ErrLoanLimit
	}
	r.loans[loan.UserID] = append(r.loans[loan.UserID], loan)
	return nil
}

func (r *TrackedLoanRepositoryMemory) Replace(loan domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loans := r.loans[loan.UserID]
	for i := range loans {
		if loans[i].ID == loan.ID {
			loans[i] = loan
			return nil
		}
	}
	return ErrLoanNotFound
}

func (r *TrackedLoanRepositoryMemory) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loans := r.loans[userID]
	for i := range loans {
		if loans[i].ID == id {
			r.loans[userID] = append(loans[:i:i], loans[i+1:]...)
			return nil
		}
	}
	return ErrLoanNotFound
}

func (r *TrackedLoanRepositoryMemory) List(userID string) ([]domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Loan, len(r.loans[userID]))
	copy(out, r.loans[userID])
	return out, nil
}
