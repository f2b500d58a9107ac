package service

import (
	"math"

	"cosmossdk.io/log"

	"finlear/domain"
	"finlear/repository"
)

type LoanService struct {
	logger        log.Logger
	repo          repository.LoanRepository
	assumedIncome float64
}

// NewLoanService creates a new LoanService with the given repository, which may be nil.
// assumedIncome feeds the future-loan planner; zero selects DefaultAssumedIncome.
func NewLoanService(
	logger log.Logger,
	repo repository.LoanRepository,
	assumedIncome float64,
) *LoanService {
	if assumedIncome <= 0 {
		assumedIncome = DefaultAssumedIncome
	}
	return &LoanService{
		logger:        logger.With("module", "loan"),
		repo:          repo,
		assumedIncome: assumedIncome,
	}
}

func validateLoan(input domain.LoanInput) error {
	if math.IsNaN(input.Amount) || input.Amount < 0 {
		return invalid("principal must not be negative")
	}
	if input.Amount > MaxLoanAmount {
		return invalid("principal exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if math.IsNaN(input.InterestRate) || input.InterestRate < 0 {
		return invalid("interest rate must not be negative")
	}
	if input.InterestRate > MaxInterestRate {
		return invalid("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return invalid("term must be at least %d month", MinTermMonths)
	}
	if input.TermMonths > MaxTermMonths {
		return invalid("term exceeds the maximum of %d months", MaxTermMonths)
	}
	return nil
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := validateLoan(input); err != nil {
		return domain.LoanResult{}, err
	}

	emi := EMI(input.Amount, input.InterestRate, input.TermMonths)
	total := emi * float64(input.TermMonths)

	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(emi),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Amount),
	}

	// History is best effort and optional.
	if s.repo != nil {
		if err := s.repo.Save(input, result); err != nil {
			s.logger.Warn("failed to save loan calculation", "error", err)
		}
	}

	return result, nil
}

// Schedule returns the month-by-month amortization table.
func (s *LoanService) Schedule(input domain.LoanInput) (domain.ScheduleResult, error) {
	if err := validateLoan(input); err != nil {
		return domain.ScheduleResult{}, err
	}

	steps := Schedule(input.Amount, input.InterestRate, input.TermMonths)
	for i := range steps {
		steps[i].RemainingPrincipal = roundTo2Decimals(steps[i].RemainingPrincipal)
		steps[i].InterestComponent = roundTo2Decimals(steps[i].InterestComponent)
		steps[i].PrincipalComponent = roundTo2Decimals(steps[i].PrincipalComponent)
	}
	return domain.ScheduleResult{
		MonthlyPayment: roundTo2Decimals(EMI(input.Amount, input.InterestRate, input.TermMonths)),
		Steps:          steps,
	}, nil
}

// InterestSaver projects the effect of a fixed extra monthly payment.
func (s *LoanService) InterestSaver(input domain.InterestSaverInput) (domain.InterestSaverResult, error) {
	if err := validateLoan(input.LoanInput); err != nil {
		return domain.InterestSaverResult{}, err
	}
	if math.IsNaN(input.ExtraPayment) || input.ExtraPayment < 0 {
		return domain.InterestSaverResult{}, invalid("extra payment must not be negative")
	}
	if input.ExtraPayment > MaxLoanAmount {
		return domain.InterestSaverResult{}, invalid("extra payment exceeds the maximum of %.2f", MaxLoanAmount)
	}

	result := SimulateExtraPayment(input.Amount, input.InterestRate, input.TermMonths, input.ExtraPayment)
	result.BaselineEMI = roundTo2Decimals(result.BaselineEMI)
	result.NewEMI = roundTo2Decimals(result.NewEMI)
	result.InterestSaved = roundTo2Decimals(result.InterestSaved)
	return result, nil
}

// Affordability classifies an EMI against a monthly income.
func (s *LoanService) Affordability(input domain.AffordabilityInput) (domain.AffordabilityResult, error) {
	if math.IsNaN(input.EMI) || input.EMI < 0 {
		return domain.AffordabilityResult{}, invalid("emi must not be negative")
	}
	result, err := ClassifyAffordability(input.EMI, input.Income)
	if err != nil {
		return domain.AffordabilityResult{}, err
	}
	result.Ratio = roundTo2Decimals(result.Ratio)
	return result, nil
}

// PlanFutureLoan estimates the EMI of a purchase financed after a down
// payment and rates it against the assumed income.
func (s *LoanService) PlanFutureLoan(input domain.FutureLoanInput) (domain.FutureLoanPlan, error) {
	if !input.LoanType.Valid() {
		return domain.FutureLoanPlan{}, invalid("unknown loan type %q", input.LoanType)
	}
	if math.IsNaN(input.Cost) || input.Cost < 0 {
		return domain.FutureLoanPlan{}, invalid("cost must not be negative")
	}
	if math.IsNaN(input.DownPayment) || input.DownPayment < 0 {
		return domain.FutureLoanPlan{}, invalid("down payment must not be negative")
	}
	if input.DownPayment > input.Cost {
		return domain.FutureLoanPlan{}, invalid("down payment exceeds cost")
	}

	loan := domain.LoanInput{
		Amount:       input.Cost - input.DownPayment,
		InterestRate: input.InterestRate,
		TermMonths:   input.TermMonths,
	}
	if err := validateLoan(loan); err != nil {
		return domain.FutureLoanPlan{}, err
	}

	emi := EMI(loan.Amount, loan.InterestRate, loan.TermMonths)
	affordability, err := ClassifyAffordability(emi, s.assumedIncome)
	if err != nil {
		return domain.FutureLoanPlan{}, err
	}
	affordability.Ratio = roundTo2Decimals(affordability.Ratio)

	return domain.FutureLoanPlan{
		LoanType:               input.LoanType,
		Principal:              roundTo2Decimals(loan.Amount),
		EstimatedEMI:           roundTo2Decimals(emi),
		RecommendedDownPayment: roundTo2Decimals(input.Cost * RecommendedDownPaymentShare),
		AssumedIncome:          s.assumedIncome,
		Affordability:          affordability,
	}, nil
}
