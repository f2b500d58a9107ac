package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cosmossdk.io/log"

	"finlear/domain"
)

// PayoffService plans how to clear several debts with one monthly budget.
type PayoffService struct {
	logger    log.Logger
	explainer PlanExplainer
}

func NewPayoffService(logger log.Logger, explainer PlanExplainer) *PayoffService {
	return &PayoffService{
		logger:    logger.With("module", "payoff"),
		explainer: explainer,
	}
}

func validatePayoff(input domain.PayoffInput) error {
	if len(input.Debts) == 0 {
		return invalid("at least one debt is required")
	}
	if len(input.Debts) > MaxDebts {
		return invalid("at most %d debts are allowed", MaxDebts)
	}
	if !input.Strategy.Valid() {
		return invalid("unknown strategy %q", input.Strategy)
	}
	if math.IsNaN(input.MonthlyBudget) || input.MonthlyBudget <= 0 {
		return invalid("monthly budget must be positive")
	}

	seen := make(map[string]bool, len(input.Debts))
	minimums := 0.0
	for _, d := range input.Debts {
		name := strings.TrimSpace(d.Name)
		switch {
		case name == "":
			return invalid("every debt needs a name")
		case seen[name]:
			return invalid("duplicate debt name %q", name)
		case math.IsNaN(d.Balance) || d.Balance <= 0 || d.Balance > MaxLoanAmount:
			return invalid("balance of %s must be between 0 and %.2f", name, MaxLoanAmount)
		case math.IsNaN(d.InterestRate) || d.InterestRate < 0 || d.InterestRate > MaxInterestRate:
			return invalid("interest rate of %s must be between 0 and %.2f%%", name, MaxInterestRate)
		case math.IsNaN(d.MinimumPayment) || d.MinimumPayment <= 0:
			return invalid("minimum payment of %s must be positive", name)
		}
		if interest := d.Balance * monthlyRate(d.InterestRate); d.MinimumPayment < interest {
			return invalid("minimum payment of %s (%.2f) does not cover its monthly interest (%.2f)",
				name, d.MinimumPayment, interest)
		}
		seen[name] = true
		minimums += d.MinimumPayment
	}
	if minimums > input.MonthlyBudget {
		return invalid("monthly budget %.2f does not cover the minimum payments of %.2f", input.MonthlyBudget, minimums)
	}
	return nil
}

// Plan simulates the payoff month by month. With StrategyCompare both
// strategies run and the one with less interest is returned along with a
// comparison.
func (s *PayoffService) Plan(ctx context.Context, input domain.PayoffInput) (domain.PayoffPlan, error) {
	if err := validatePayoff(input); err != nil {
		return domain.PayoffPlan{}, err
	}
	for i := range input.Debts {
		input.Debts[i].Name = strings.TrimSpace(input.Debts[i].Name)
	}

	var plan domain.PayoffPlan
	if input.Strategy == domain.StrategyCompare {
		snowball, ok := simulatePayoff(input.Debts, input.MonthlyBudget, domain.StrategySnowball)
		if !ok {
			return domain.PayoffPlan{}, errNeverPaidOff()
		}
		avalanche, ok := simulatePayoff(input.Debts, input.MonthlyBudget, domain.StrategyAvalanche)
		if !ok {
			return domain.PayoffPlan{}, errNeverPaidOff()
		}

		plan = snowball
		if avalanche.TotalInterestPaid < snowball.TotalInterestPaid {
			plan = avalanche
		}
		plan.Comparison = &domain.StrategyComparison{
			Snowball:      domain.StrategyOutcome{TotalInterestPaid: snowball.TotalInterestPaid, MonthsToPayoff: snowball.MonthsToPayoff},
			Avalanche:     domain.StrategyOutcome{TotalInterestPaid: avalanche.TotalInterestPaid, MonthsToPayoff: avalanche.MonthsToPayoff},
			InterestSaved: roundTo2Decimals(math.Max(0, snowball.TotalInterestPaid-avalanche.TotalInterestPaid)),
			MonthsSaved:   snowball.MonthsToPayoff - avalanche.MonthsToPayoff,
		}
	} else {
		var ok bool
		if plan, ok = simulatePayoff(input.Debts, input.MonthlyBudget, input.Strategy); !ok {
			return domain.PayoffPlan{}, errNeverPaidOff()
		}
	}
	s.logger.Info("planned debt payoff", "strategy", plan.Strategy, "debts", len(input.Debts), "months", plan.MonthsToPayoff)

	plan.Explanation = payoffFallback(plan)
	if s.explainer != nil {
		text, err := s.explainer.ExplainPayoff(ctx, plan, input.Debts)
		if err != nil {
			s.logger.Warn("payoff explanation failed, using fallback", "error", err)
		} else if text != "" {
			plan.Explanation = text
		}
	}
	return plan, nil
}

func errNeverPaidOff() error {
	return invalid("the monthly budget does not clear these debts within %d months", MaxPayoffMonths)
}

// simulatePayoff charges a month of interest on every open debt, pays each
// minimum, then sends whatever is left of the budget to the first open debt
// in strategy order. It reports false if debt remains after MaxPayoffMonths.
func simulatePayoff(input []domain.Debt, budget float64, strategy domain.PayoffStrategy) (domain.PayoffPlan, bool) {
	debts := make([]domain.Debt, len(input))
	copy(debts, input)
	if strategy == domain.StrategySnowball {
		sort.SliceStable(debts, func(i, j int) bool { return debts[i].Balance < debts[j].Balance })
	} else {
		sort.SliceStable(debts, func(i, j int) bool { return debts[i].InterestRate > debts[j].InterestRate })
	}

	balances := make([]float64, len(debts))
	totalDebt := 0.0
	for i, d := range debts {
		balances[i] = d.Balance
		totalDebt += d.Balance
	}

	open := func() bool {
		for _, b := range balances {
			if b > DebtBalanceTolerance {
				return true
			}
		}
		return false
	}

	plan := domain.PayoffPlan{Strategy: strategy, TotalDebt: roundTo2Decimals(totalDebt), Schedule: []domain.PayoffMonth{}}
	totalInterest := 0.0
	month := 0
	for open() && month < MaxPayoffMonths {
		month++
		available := budget
		payments := make([]domain.DebtPayment, 0, len(debts))
		paid := make([]float64, len(debts))

		for i, d := range debts {
			if balances[i] <= DebtBalanceTolerance {
				continue
			}
			interest := balances[i] * monthlyRate(d.InterestRate)
			totalInterest += interest
			balances[i] += interest

			payment := math.Min(math.Min(d.MinimumPayment, balances[i]), available)
			balances[i] -= payment
			paid[i] = payment
			available -= payment
		}

		for i := range debts {
			if available <= 0 {
				break
			}
			if balances[i] <= DebtBalanceTolerance {
				continue
			}
			extra := math.Min(available, balances[i])
			balances[i] -= extra
			paid[i] += extra
			available -= extra
		}

		total := 0.0
		for i, d := range debts {
			if paid[i] == 0 {
				continue
			}
			if balances[i] < DebtBalanceTolerance {
				balances[i] = 0
			}
			payments = append(payments, domain.DebtPayment{
				DebtName:         d.Name,
				Payment:          roundTo2Decimals(paid[i]),
				RemainingBalance: roundTo2Decimals(balances[i]),
			})
			total += paid[i]
		}
		plan.Schedule = append(plan.Schedule, domain.PayoffMonth{
			Month:     month,
			Payments:  payments,
			TotalPaid: roundTo2Decimals(total),
		})
	}

	plan.TotalInterestPaid = roundTo2Decimals(totalInterest)
	plan.MonthsToPayoff = month
	return plan, !open()
}

func payoffFallback(plan domain.PayoffPlan) string {
	tip := "Paying the highest-rate debt first keeps total interest as low as possible."
	name := "avalanche"
	if plan.Strategy == domain.StrategySnowball {
		tip = "Clearing the smallest balance first gives quick wins that keep you motivated."
		name = "snowball"
	}
	return fmt.Sprintf("With the %s strategy you pay ₹%.2f in interest and are debt free in %d months (%.1f years). %s",
		name, plan.TotalInterestPaid, plan.MonthsToPayoff, float64(plan.MonthsToPayoff)/12, tip)
}
