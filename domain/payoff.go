package domain

// PayoffStrategy decides which debt receives money left over after every
// minimum payment is covered.
type PayoffStrategy string

const (
	// StrategySnowball pays the smallest balance first.
	StrategySnowball PayoffStrategy = "snowball"
	// StrategyAvalanche pays the highest interest rate first.
	StrategyAvalanche PayoffStrategy = "avalanche"
	// StrategyCompare runs both and returns the cheaper one.
	StrategyCompare PayoffStrategy = "compare"
)

func (s PayoffStrategy) Valid() bool {
	switch s {
	case StrategySnowball, StrategyAvalanche, StrategyCompare:
		return true
	}
	return false
}

type Debt struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	InterestRate   float64 `json:"annualRatePercent"`
	MinimumPayment float64 `json:"minimumPayment"`
}

type PayoffInput struct {
	Debts         []Debt         `json:"debts"`
	MonthlyBudget float64        `json:"monthlyBudget"`
	Strategy      PayoffStrategy `json:"strategy"`
}

type DebtPayment struct {
	DebtName         string  `json:"debtName"`
	Payment          float64 `json:"payment"`
	RemainingBalance float64 `json:"remainingBalance"`
}

type PayoffMonth struct {
	Month     int           `json:"month"`
	Payments  []DebtPayment `json:"payments"`
	TotalPaid float64       `json:"totalPaid"`
}

type StrategyOutcome struct {
	TotalInterestPaid float64 `json:"totalInterestPaid"`
	MonthsToPayoff    int     `json:"monthsToPayoff"`
}

type StrategyComparison struct {
	Snowball      StrategyOutcome `json:"snowball"`
	Avalanche     StrategyOutcome `json:"avalanche"`
	InterestSaved float64         `json:"interestSaved"`
	MonthsSaved   int             `json:"monthsSaved"`
}

type PayoffPlan struct {
	Strategy          PayoffStrategy      `json:"strategy"`
	TotalDebt         float64             `json:"totalDebt"`
	TotalInterestPaid float64             `json:"totalInterestPaid"`
	MonthsToPayoff    int                 `json:"monthsToPayoff"`
	Schedule          []PayoffMonth       `json:"schedule"`
	Comparison        *StrategyComparison `json:"comparison,omitempty"`
	Explanation       string              `json:"explanation,omitempty"`
}
