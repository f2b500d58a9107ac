package service

import (
	"math"

	"finlear/domain"
)

// roundTo2Decimals rounds a currency value to paise/cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 12 / 100
}

// EMI returns the fixed monthly payment that amortizes principal over
// termMonths at annualRatePercent. A zero rate splits the principal evenly.
// Inputs must already be validated: termMonths >= 1, no negative values.
func EMI(principal, annualRatePercent float64, termMonths int) float64 {
	r := monthlyRate(annualRatePercent)
	n := float64(termMonths)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// Schedule walks the loan month by month at the standard EMI. The last
// payment absorbs the rounding drift so the balance ends at exactly zero.
func Schedule(principal, annualRatePercent float64, termMonths int) []domain.AmortizationStep {
	r := monthlyRate(annualRatePercent)
	emi := EMI(principal, annualRatePercent, termMonths)

	steps := make([]domain.AmortizationStep, 0, termMonths)
	remaining := principal
	for month := 1; month <= termMonths; month++ {
		interest := remaining * r
		principalPart := emi - interest
		if month == termMonths || principalPart > remaining {
			principalPart = remaining
		}
		remaining -= principalPart
		steps = append(steps, domain.AmortizationStep{
			MonthIndex:         month,
			RemainingPrincipal: remaining,
			InterestComponent:  interest,
			PrincipalComponent: principalPart,
		})
		if remaining <= 0 {
			break
		}
	}
	return steps
}

// SimulateExtraPayment pays EMI+extra every month, never looking past the
// original term, and reports how much sooner and cheaper the loan ends.
// Interest saved compares the interest actually accrued on the shrinking
// balance against the baseline interest, so it never falls as extra grows.
func SimulateExtraPayment(principal, annualRatePercent float64, termMonths int, extra float64) domain.InterestSaverResult {
	baseline := EMI(principal, annualRatePercent, termMonths)
	result := domain.InterestSaverResult{
		BaselineEMI:   baseline,
		NewEMI:        baseline + extra,
		NewTermMonths: termMonths,
	}
	if extra <= 0 || principal <= 0 {
		return result
	}

	r := monthlyRate(annualRatePercent)
	remaining := principal
	months := 0
	accrued := 0.0
	for remaining > 0 && months < termMonths {
		interest := remaining * r
		accrued += interest
		remaining -= result.NewEMI - interest
		months++
	}

	baselineInterest := baseline*float64(termMonths) - principal
	result.NewTermMonths = months
	result.MonthsSaved = max(0, termMonths-months)
	result.InterestSaved = math.Max(0, baselineInterest-accrued)
	return result
}

// ClassifyAffordability maps EMI/income to a tier. Income must be positive.
func ClassifyAffordability(emi, income float64) (domain.AffordabilityResult, error) {
	if income <= 0 {
		return domain.AffordabilityResult{}, ErrZeroIncome
	}
	ratio := emi / income * 100
	return domain.NewAffordabilityResult(ratio, TierForRatio(ratio)), nil
}

// TierForRatio applies the fixed thresholds: below 30 is affordable, 30 to 50
// inclusive is moderate, anything above is high risk.
func TierForRatio(ratio float64) domain.AffordabilityTier {
	switch {
	case ratio < AffordableBelowPercent:
		return domain.TierAffordable
	case ratio <= ModerateUpToPercent:
		return domain.TierModerate
	}
	return domain.TierHighRisk
}
