package repository

import (
	"errors"

	"finlear/domain"
)

var (
	ErrLoanNotFound = errors.New("loan not found")
	ErrLoanLimit    = errors.New("loan limit reached")
)

// LoanRepository keeps a history of EMI calculations.
type LoanRepository interface {
	Save(input domain.LoanInput, result domain.LoanResult) error
}

// TrackedLoanRepository stores the loans users add to the tracker.
type TrackedLoanRepository interface {
	Add(loan domain.Loan, limit int) error
	Replace(loan domain.Loan) error
	Delete(userID, id string) error
	List(userID string) ([]domain.Loan, error)
}
