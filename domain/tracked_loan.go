package domain

// LoanType is the category of an existing loan in the tracker.
type LoanType string

const (
	LoanBank      LoanType = "bank"
	LoanCredit    LoanType = "credit"
	LoanCar       LoanType = "car"
	LoanEducation LoanType = "education"
)

func (t LoanType) Valid() bool {
	switch t {
	case LoanBank, LoanCredit, LoanCar, LoanEducation:
		return true
	}
	return false
}

type LoanStatus string

const (
	StatusOnTrack LoanStatus = "On Track"
	StatusHeavy   LoanStatus = "Heavy"
	StatusRisky   LoanStatus = "Risky"
)

// Loan is an existing loan a user tracks. It is replaced wholesale, never patched.
type Loan struct {
	ID              string   `json:"id"`
	UserID          string   `json:"-"`
	Name            string   `json:"name"`
	Type            LoanType `json:"type"`
	EMIAmount       float64  `json:"emiAmount"`
	TotalMonths     int      `json:"totalMonths"`
	RemainingMonths int      `json:"remainingMonths"`
}

// Progress is the share of the term already paid, in percent.
func (l Loan) Progress() float64 {
	if l.TotalMonths <= 0 {
		return 0
	}
	return float64(l.TotalMonths-l.RemainingMonths) / float64(l.TotalMonths) * 100
}

func (l Loan) Status() LoanStatus {
	p := l.Progress()
	switch {
	case p >= 75:
		return StatusOnTrack
	case p >= 50:
		return StatusHeavy
	}
	return StatusRisky
}

// TrackedLoanInput is the tracker form. RemainingMonths is a pointer so an
// omitted field can be told apart from a loan with nothing left to pay.
type TrackedLoanInput struct {
	Name            string   `json:"name"`
	Type            LoanType `json:"type"`
	EMIAmount       Amount   `json:"emiAmount"`
	TotalMonths     int      `json:"totalMonths"`
	RemainingMonths *int     `json:"remainingMonths"`
}

type TrackedLoanView struct {
	Loan
	Progress float64    `json:"progress"`
	Status   LoanStatus `json:"status"`
}

func NewTrackedLoanView(l Loan) TrackedLoanView {
	return TrackedLoanView{Loan: l, Progress: l.Progress(), Status: l.Status()}
}

type LoanSummary struct {
	Count         int                  `json:"count"`
	TotalEMI      float64              `json:"totalEmi"`
	Affordability *AffordabilityResult `json:"affordability,omitempty"`
}
