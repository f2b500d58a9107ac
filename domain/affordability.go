package domain

// AffordabilityTier classifies the EMI burden relative to income.
type AffordabilityTier string

const (
	TierAffordable AffordabilityTier = "affordable"
	TierModerate   AffordabilityTier = "moderate"
	TierHighRisk   AffordabilityTier = "high_risk"
)

// Label returns the display name of the tier.
func (t AffordabilityTier) Label() string {
	switch t {
	case TierAffordable:
		return "Affordable"
	case TierModerate:
		return "Moderate"
	case TierHighRisk:
		return "High Risk"
	}
	return string(t)
}

// Color returns the theme token the client paints the tier with.
func (t AffordabilityTier) Color() string {
	switch t {
	case TierAffordable:
		return "success"
	case TierModerate:
		return "warning"
	}
	return "destructive"
}

func (t AffordabilityTier) Suggestion() string {
	switch t {
	case TierAffordable:
		return "Great! Your EMI burden is healthy. You have good financial flexibility."
	case TierModerate:
		return "Moderate burden. Try to reduce spending or avoid new loans."
	}
	return "High risk! Your EMIs are too high. Consider consolidating loans or increasing income."
}

type AffordabilityInput struct {
	EMI    float64 `json:"emi"`
	Income float64 `json:"income"`
}

type AffordabilityResult struct {
	Ratio      float64           `json:"ratio"`
	Tier       AffordabilityTier `json:"tier"`
	Label      string            `json:"label"`
	Color      string            `json:"color"`
	Suggestion string            `json:"suggestion"`
}

// NewAffordabilityResult fills the presentation fields from the tier.
func NewAffordabilityResult(ratio float64, tier AffordabilityTier) AffordabilityResult {
	return AffordabilityResult{
		Ratio:      ratio,
		Tier:       tier,
		Label:      tier.Label(),
		Color:      tier.Color(),
		Suggestion: tier.Suggestion(),
	}
}

// PlannedLoanType is the kind of purchase a future loan finances.
type PlannedLoanType string

const (
	PlannedHome      PlannedLoanType = "home"
	PlannedCar       PlannedLoanType = "car"
	PlannedEducation PlannedLoanType = "education"
	PlannedGadget    PlannedLoanType = "gadget"
)

func (t PlannedLoanType) Valid() bool {
	switch t {
	case PlannedHome, PlannedCar, PlannedEducation, PlannedGadget:
		return true
	}
	return false
}

type FutureLoanInput struct {
	LoanType     PlannedLoanType `json:"loanType"`
	Cost         float64         `json:"cost"`
	DownPayment  float64         `json:"downPayment"`
	InterestRate float64         `json:"annualRatePercent"`
	TermMonths   int             `json:"termMonths"`
}

type FutureLoanPlan struct {
	LoanType               PlannedLoanType     `json:"loanType"`
	Principal              float64             `json:"principal"`
	EstimatedEMI           float64             `json:"estimatedEmi"`
	RecommendedDownPayment float64             `json:"recommendedDownPayment"`
	AssumedIncome          float64             `json:"assumedIncome"`
	Affordability          AffordabilityResult `json:"affordability"`
}
