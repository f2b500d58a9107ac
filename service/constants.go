package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // percent per year
	MaxTermMonths   = 600    // 50 years
	MinTermMonths   = 1

	// Affordability thresholds, EMI as a percent of monthly income.
	AffordableBelowPercent = 30.0
	ModerateUpToPercent    = 50.0

	RecommendedDownPaymentShare = 0.20
	DefaultAssumedIncome        = 75_000.0

	// A chapter counts as completed at this quiz score.
	QuizPassScore = 60.0

	MaxBudgetRows     = 100
	MaxTrackedLoans   = 50
	DefaultVideoCount = 5
	MaxVideoCount     = 25
	FlashcardCount    = 5

	// Term recommendation evaluates at most this many months of range.
	MaxTermRangeMonths = 120

	MaxDebts             = 50
	MaxPayoffMonths      = 600
	DebtBalanceTolerance = 0.01
)
