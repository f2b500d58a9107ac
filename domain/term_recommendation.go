package domain

type TermPreference string

const (
	PreferLowInterest TermPreference = "minimize_interest"
	PreferLowPayment  TermPreference = "minimize_payment"
	PreferBalanced    TermPreference = "balanced"
)

func (p TermPreference) Valid() bool {
	switch p {
	case PreferLowInterest, PreferLowPayment, PreferBalanced:
		return true
	}
	return false
}

// TermRecommendationInput asks which term in [MinTermMonths, MaxTermMonths]
// suits a loan best. MaxMonthlyPayment caps the EMI; when it is zero and
// Income is set, the cap is the affordable share of income.
type TermRecommendationInput struct {
	Principal         float64        `json:"principal"`
	InterestRate      float64        `json:"annualRatePercent"`
	MinTermMonths     int            `json:"minTermMonths"`
	MaxTermMonths     int            `json:"maxTermMonths"`
	MaxMonthlyPayment float64        `json:"maxMonthlyPayment"`
	Income            float64        `json:"income,omitempty"`
	Preference        TermPreference `json:"preference"`
}

type TermOption struct {
	TermMonths     int     `json:"termMonths"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Score          float64 `json:"score"`
}

type TermRecommendationResult struct {
	RecommendedTerm   int          `json:"recommendedTerm"`
	MaxMonthlyPayment float64      `json:"maxMonthlyPayment"`
	Options           []TermOption `json:"options"`
	Explanation       string       `json:"explanation"`
}
