package domain

// LoanInput holds the parameters of a single EMI calculation.
type LoanInput struct {
	Amount       float64 `json:"principal"`
	InterestRate float64 `json:"annualRatePercent"`
	TermMonths   int     `json:"termMonths"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// AmortizationStep is one month of a repayment schedule.
type AmortizationStep struct {
	MonthIndex         int     `json:"monthIndex"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
	InterestComponent  float64 `json:"interestComponent"`
	PrincipalComponent float64 `json:"principalComponent"`
}

type ScheduleResult struct {
	MonthlyPayment float64            `json:"monthlyPayment"`
	Steps          []AmortizationStep `json:"steps"`
}

type InterestSaverInput struct {
	LoanInput
	ExtraPayment float64 `json:"extraPayment"`
}

type InterestSaverResult struct {
	BaselineEMI   float64 `json:"baselineEmi"`
	NewEMI        float64 `json:"newEmi"`
	NewTermMonths int     `json:"newTermMonths"`
	MonthsSaved   int     `json:"monthsSaved"`
	InterestSaved float64 `json:"interestSaved"`
}
