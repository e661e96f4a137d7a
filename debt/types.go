/*
Package debt provides the debt-payoff planning engine.

PURPOSE:
  This package contains the deterministic core of the Chai Wallet debt
  planner: given a set of loans and a monthly cash position, it chooses a
  repayment strategy (Avalanche or Snowball), simulates month-by-month
  amortization with compounding interest until every loan is retired, and
  derives summary figures (payoff horizon, total interest, per-loan payoff
  months) from the simulation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Loan: A single outstanding debt (balance, APR, minimum payment)
  - Plan: The aggregate input (income, expenses, loans)
  - RepaymentOrdering: A strategy-tagged permutation of the plan's loans
  - RepaymentStep / RepaymentSchedule: The simulation output

DESIGN PRINCIPLES:
  1. Purity: Selection and simulation never mutate caller-owned data
  2. Precision: Uses decimal.Decimal to avoid floating-point drift
  3. Determinism: Stable sorts with explicit tie-breaks, no randomness
  4. Complete or nothing: Either a fully-terminated schedule is returned
     or a structured error; there is no partial-result mode

USAGE:
  planner := debt.NewPlanner()
  schedule, err := planner.Build(debt.Plan{
      Income:   decimal.NewFromInt(3000),
      Expenses: decimal.NewFromInt(2000),
      Loans: []debt.Loan{
          {Name: "Car Loan", Balance: decimal.NewFromInt(5000),
           InterestRate: decimal.NewFromInt(20),
           MinimumPayment: decimal.NewFromInt(200)},
      },
  })

SEE ALSO:
  - strategy.go: Avalanche/Snowball selection
  - simulator.go: Month-by-month amortization
  - planner.go: Validation and the combined entry point
*/
package debt

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// LOAN - One outstanding debt
// =============================================================================

// Loan represents one outstanding debt in a plan.
// Balance must be positive at creation; once it reaches zero during
// simulation the loan is retired and stops accruing interest and owing
// its minimum payment.
type Loan struct {
	Name           string
	Balance        decimal.Decimal
	InterestRate   decimal.Decimal // nominal annual percentage rate, e.g. 12.5
	MinimumPayment decimal.Decimal // required monthly payment
}

// MonthlyRate returns the exact monthly compounding rate APR / 12 / 100.
func (l Loan) MonthlyRate() decimal.Decimal {
	return l.InterestRate.Div(decimal.NewFromInt(1200))
}

// =============================================================================
// PLAN - Aggregate simulation input
// =============================================================================

// Plan is the caller-supplied input: monthly income, monthly expenses
// excluding debt service, and the loans in the caller's order (insertion
// order, not repayment order).
type Plan struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Loans    []Loan
}

// Disposable returns income minus expenses, the monthly cash available
// for debt service.
func (p Plan) Disposable() decimal.Decimal {
	return p.Income.Sub(p.Expenses)
}

// TotalMinimumPayments sums the minimum payments of all loans.
func (p Plan) TotalMinimumPayments() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Loans {
		total = total.Add(l.MinimumPayment)
	}
	return total
}

// =============================================================================
// STRATEGY / ORDERING
// =============================================================================

// StrategyName identifies a repayment ordering strategy.
type StrategyName string

const (
	// StrategyAvalanche targets the highest-interest-rate loan first.
	// Mathematically optimal: minimizes total interest paid.
	StrategyAvalanche StrategyName = "Debt Avalanche"

	// StrategySnowball targets the lowest-balance loan first, trading
	// some interest for early psychological wins.
	StrategySnowball StrategyName = "Debt Snowball"
)

// RepaymentOrdering is a permutation of a plan's loans tagged with the
// strategy that produced it. The loan slice is owned by the ordering;
// callers must treat it as read-only.
type RepaymentOrdering struct {
	Strategy StrategyName
	Loans    []Loan
}

// =============================================================================
// SCHEDULE - Simulation output
// =============================================================================

// RepaymentStep records one simulated month.
type RepaymentStep struct {
	// Month is 1-based and sequential.
	Month int

	// TotalRemainingBalance is the sum of all loan balances at month
	// end. Non-negative and non-increasing across the schedule.
	TotalRemainingBalance decimal.Decimal

	// MonthlyPayment is the actual cash applied to debts this month.
	// In the final month this can be less than the usual contribution
	// when the last balance is smaller than the payment capacity.
	MonthlyPayment decimal.Decimal
}

// LoanPayoff records the month a specific loan was retired.
type LoanPayoff struct {
	Name  string
	Month int
}

// RepaymentSchedule is the complete simulation result: one step per
// month until all loans are retired. Immutable once returned.
type RepaymentSchedule struct {
	Strategy          StrategyName
	Steps             []RepaymentStep
	TotalInterestPaid decimal.Decimal
	LoanPayoffs       []LoanPayoff // in order of retirement
}

// Months returns the payoff horizon in months.
func (rs *RepaymentSchedule) Months() int {
	return len(rs.Steps)
}

// Horizon returns the payoff horizon split into whole years and months.
func (rs *RepaymentSchedule) Horizon() (years, months int) {
	return len(rs.Steps) / 12, len(rs.Steps) % 12
}

// PayoffMonth returns the month the named loan was retired, or 0 when
// the loan does not appear in the schedule.
func (rs *RepaymentSchedule) PayoffMonth(name string) int {
	for _, p := range rs.LoanPayoffs {
		if p.Name == name {
			return p.Month
		}
	}
	return 0
}
