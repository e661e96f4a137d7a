/*
simulator.go - Month-by-month amortization simulation

PURPOSE:
  Runs a repayment ordering forward in time, one month per step, until
  every loan is retired. Each month: interest compounds on outstanding
  balances, every outstanding loan receives its minimum payment, and the
  first still-open loan in the ordering (the "target") additionally
  receives all disposable income beyond the minimums.

ROLL-OVER ("snowballing"):
  No explicit transfer happens when a loan is retired. The next month's
  extra is recomputed as income - expenses - sum(minimums of loans still
  outstanding), so a retired loan's minimum-payment capacity flows to the
  new target automatically. Surplus freed within a month (payment larger
  than the remaining balance) is NOT redirected to the next target in the
  same month.

NUMERIC SEMANTICS:
  decimal.Decimal arithmetic with the exact monthly rate APR/12/100.
  The schedule terminates once the total balance falls at or below
  Epsilon (default 0.01 currency units), which absorbs rounding residue.
  A hard iteration cap (default 1200 months) turns pathological inputs
  into ErrScheduleDivergent instead of an unbounded loop.

PURITY:
  The simulator works on copies of the loan balances. Caller-owned loans
  are never mutated, so concurrent callers need no coordination.

SEE ALSO:
  - strategy.go: Produces the ordering consumed here
  - planner.go: Validates inputs and combines selection + simulation
*/
package debt

import (
	"github.com/shopspring/decimal"
)

// Simulation bounds. MaxMonths caps runaway schedules at 100 years.
const (
	DefaultMaxMonths = 1200
)

// DefaultEpsilon is the termination tolerance: one cent.
var DefaultEpsilon = decimal.RequireFromString("0.01")

// =============================================================================
// SIMULATOR
// =============================================================================

// Simulator runs amortization schedules. The zero value is not usable;
// construct with NewSimulator.
type Simulator struct {
	// Epsilon is the balance below which a loan (and the whole
	// schedule) counts as paid off.
	Epsilon decimal.Decimal

	// MaxMonths caps the simulation length.
	MaxMonths int
}

// NewSimulator returns a Simulator with the default epsilon and cap.
func NewSimulator() *Simulator {
	return &Simulator{Epsilon: DefaultEpsilon, MaxMonths: DefaultMaxMonths}
}

// Simulate runs the ordering to completion and returns the schedule.
//
// Preconditions are re-validated defensively: every balance positive,
// every rate non-negative, every minimum payment positive, and the
// disposable income covering the sum of minimums. Violations fail with
// ErrInvalidInput / ErrInsufficientIncome before any simulation runs.
func (s *Simulator) Simulate(ordering RepaymentOrdering, income, expenses decimal.Decimal) (*RepaymentSchedule, error) {
	loans := ordering.Loans
	if err := validateLoans(loans); err != nil {
		return nil, err
	}

	disposable := income.Sub(expenses)
	minimums := decimal.Zero
	for _, l := range loans {
		minimums = minimums.Add(l.MinimumPayment)
	}
	if disposable.LessThan(minimums) {
		return nil, &InsufficientIncomeError{
			Disposable:      disposable,
			MinimumPayments: minimums,
			Shortfall:       minimums.Sub(disposable),
		}
	}

	// Working state: balances are copies, caller data stays untouched.
	balances := make([]decimal.Decimal, len(loans))
	growth := make([]decimal.Decimal, len(loans))
	one := decimal.NewFromInt(1)
	for i, l := range loans {
		balances[i] = l.Balance
		growth[i] = one.Add(l.MonthlyRate())
	}

	schedule := &RepaymentSchedule{
		Strategy:          ordering.Strategy,
		TotalInterestPaid: decimal.Zero,
	}

	for month := 1; month <= s.MaxMonths; month++ {
		// 1. Minimums owed this month: only loans still outstanding.
		minSum := decimal.Zero
		target := -1
		for i := range loans {
			if balances[i].IsPositive() {
				minSum = minSum.Add(loans[i].MinimumPayment)
				if target == -1 {
					target = i
				}
			}
		}
		if target == -1 {
			break
		}

		// 2. Extra beyond minimums, clamped for callers that bypassed
		// validation.
		extra := disposable.Sub(minSum)
		if extra.IsNegative() {
			extra = decimal.Zero
		}

		// 3. Accrue interest, then apply payments.
		totalPaid := decimal.Zero
		for i := range loans {
			if !balances[i].IsPositive() {
				continue
			}

			accrued := balances[i].Mul(growth[i])
			schedule.TotalInterestPaid = schedule.TotalInterestPaid.Add(accrued.Sub(balances[i]))
			balances[i] = accrued

			payment := loans[i].MinimumPayment
			if i == target {
				payment = payment.Add(extra)
			}
			if payment.GreaterThan(balances[i]) {
				payment = balances[i]
			}
			balances[i] = balances[i].Sub(payment)
			totalPaid = totalPaid.Add(payment)

			if balances[i].LessThanOrEqual(s.Epsilon) {
				balances[i] = decimal.Zero
				schedule.LoanPayoffs = append(schedule.LoanPayoffs, LoanPayoff{
					Name:  loans[i].Name,
					Month: month,
				})
			}
		}

		// 4. Record the step and check termination.
		remaining := decimal.Zero
		for i := range loans {
			remaining = remaining.Add(balances[i])
		}
		if remaining.LessThanOrEqual(s.Epsilon) {
			remaining = decimal.Zero
		}

		schedule.Steps = append(schedule.Steps, RepaymentStep{
			Month:                 month,
			TotalRemainingBalance: remaining,
			MonthlyPayment:        totalPaid,
		})

		if remaining.IsZero() {
			return schedule, nil
		}
	}

	remaining := decimal.Zero
	for i := range balances {
		remaining = remaining.Add(balances[i])
	}
	return nil, &ScheduleDivergentError{MaxMonths: s.MaxMonths, RemainingBalance: remaining}
}

// validateLoans checks the per-loan preconditions shared by the
// simulator and the planner.
func validateLoans(loans []Loan) error {
	if len(loans) == 0 {
		return &InvalidInputError{Field: "loans", Reason: "must not be empty"}
	}

	seen := make(map[string]bool, len(loans))
	for _, l := range loans {
		if l.Name == "" {
			return &InvalidInputError{Field: "name", Reason: "must not be empty"}
		}
		if seen[l.Name] {
			return &InvalidInputError{LoanName: l.Name, Field: "name", Reason: "is duplicated"}
		}
		seen[l.Name] = true

		if !l.Balance.IsPositive() {
			return &InvalidInputError{LoanName: l.Name, Field: "balance", Value: l.Balance, Reason: "must be positive"}
		}
		if l.InterestRate.IsNegative() {
			return &InvalidInputError{LoanName: l.Name, Field: "interestRate", Value: l.InterestRate, Reason: "must be non-negative"}
		}
		if !l.MinimumPayment.IsPositive() {
			return &InvalidInputError{LoanName: l.Name, Field: "minimumPayment", Value: l.MinimumPayment, Reason: "must be positive"}
		}
	}
	return nil
}
