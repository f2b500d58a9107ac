package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cosmossdk.io/log"
	"github.com/google/uuid"

	"finlear/domain"
	"finlear/repository"
)

type LoanTrackerService struct {
	logger log.Logger
	repo   repository.TrackedLoanRepository
	newID  func() string
}

func NewLoanTrackerService(logger log.Logger, repo repository.TrackedLoanRepository) *LoanTrackerService {
	return &LoanTrackerService{
		logger: logger.With("module", "loan_tracker"),
		repo:   repo,
		newID:  uuid.NewString,
	}
}

func buildLoan(userID, id string, input domain.TrackedLoanInput) (domain.Loan, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.EMIAmount == 0 || input.TotalMonths == 0 || input.RemainingMonths == nil {
		return domain.Loan{}, invalid("please fill all fields")
	}
	if input.Type == "" {
		input.Type = domain.LoanBank
	}
	if !input.Type.Valid() {
		return domain.Loan{}, invalid("unknown loan type %q", input.Type)
	}
	emi := input.EMIAmount.Float64()
	if math.IsNaN(emi) || math.IsInf(emi, 0) || emi < 0 || emi > MaxLoanAmount {
		return domain.Loan{}, invalid("emi amount must be between 0 and %.2f", MaxLoanAmount)
	}
	if input.TotalMonths < MinTermMonths || input.TotalMonths > MaxTermMonths {
		return domain.Loan{}, invalid("total months must be between %d and %d", MinTermMonths, MaxTermMonths)
	}
	remaining := *input.RemainingMonths
	if remaining < 0 || remaining > input.TotalMonths {
		return domain.Loan{}, invalid("remaining months must be between 0 and total months")
	}

	return domain.Loan{
		ID:              id,
		UserID:          userID,
		Name:            name,
		Type:            input.Type,
		EMIAmount:       roundTo2Decimals(emi),
		TotalMonths:     input.TotalMonths,
		RemainingMonths: remaining,
	}, nil
}

// AddLoan validates the form and stores a new loan under a fresh id.
func (s *LoanTrackerService) AddLoan(userID string, input domain.TrackedLoanInput) (domain.TrackedLoanView, error) {
	loan, err := buildLoan(userID, s.newID(), input)
	if err != nil {
		return domain.TrackedLoanView{}, err
	}
	if err := s.repo.Add(loan, MaxTrackedLoans); err != nil {
		if errors.Is(err, repository.ErrLoanLimit) {
			return domain.TrackedLoanView{}, invalid("a user can track at most %d loans", MaxTrackedLoans)
		}
		return domain.TrackedLoanView{}, fmt.Errorf("add loan: %w", err)
	}
	s.logger.Info("loan added", "user", userID, "loan", loan.ID, "type", loan.Type)
	return domain.NewTrackedLoanView(loan), nil
}

// ReplaceLoan overwrites every field of an existing loan.
func (s *LoanTrackerService) ReplaceLoan(userID, id string, input domain.TrackedLoanInput) (domain.TrackedLoanView, error) {
	loan, err := buildLoan(userID, id, input)
	if err != nil {
		return domain.TrackedLoanView{}, err
	}
	if err := s.repo.Replace(loan); err != nil {
		if errors.Is(err, repository.ErrLoanNotFound) {
			return domain.TrackedLoanView{}, fmt.Errorf("%w: loan %s", ErrNotFound, id)
		}
		return domain.TrackedLoanView{}, fmt.Errorf("replace loan: %w", err)
	}
	return domain.NewTrackedLoanView(loan), nil
}

func (s *LoanTrackerService) DeleteLoan(userID, id string) error {
	if err := s.repo.Delete(userID, id); err != nil {
		if errors.Is(err, repository.ErrLoanNotFound) {
			return fmt.Errorf("%w: loan %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete loan: %w", err)
	}
	s.logger.Info("loan removed", "user", userID, "loan", id)
	return nil
}

func (s *LoanTrackerService) ListLoans(userID string) ([]domain.TrackedLoanView, error) {
	loans, err := s.repo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	views := make([]domain.TrackedLoanView, len(loans))
	for i, l := range loans {
		views[i] = domain.NewTrackedLoanView(l)
	}
	return views, nil
}

// Summary totals the monthly EMI burden. When income is positive the total is
// also classified for affordability.
func (s *LoanTrackerService) Summary(userID string, income float64) (domain.LoanSummary, error) {
	loans, err := s.repo.List(userID)
	if err != nil {
		return domain.LoanSummary{}, fmt.Errorf("list loans: %w", err)
	}

	summary := domain.LoanSummary{Count: len(loans)}
	for _, l := range loans {
		if l.RemainingMonths > 0 {
			summary.TotalEMI += l.EMIAmount
		}
	}
	summary.TotalEMI = roundTo2Decimals(summary.TotalEMI)

	if income > 0 {
		a, err := ClassifyAffordability(summary.TotalEMI, income)
		if err != nil {
			return domain.LoanSummary{}, err
		}
		a.Ratio = roundTo2Decimals(a.Ratio)
		summary.Affordability = &a
	}
	return summary, nil
}
