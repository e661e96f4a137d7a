/*
strategy.go - Repayment strategy selection

PURPOSE:
  Decides the order in which loans receive extra payment. Two candidate
  orderings are computed and one is chosen:

  Debt Avalanche (default):
    Highest interest rate first. Saves the most money on interest and is
    almost always mathematically superior.

  Debt Snowball:
    Lowest balance first. Chosen only when a "quick win" exists: the
    first-targeted loan would be retired within QuickWinMonths months
    with the full disposable income thrown at it. Early wins keep people
    on the plan.

TIE-BREAKS (all sorts are stable, so input order is the final tie-break):
  Avalanche: interest rate desc, then balance desc, then input order
  Snowball:  balance asc, then interest rate desc, then input order

DETERMINISM:
  Selection is a pure function of the plan. Called twice on identical
  input it yields an identical ordering and strategy name.

SEE ALSO:
  - simulator.go: Used to probe the quick-win condition
  - planner.go: Validates the plan before selection
*/
package debt

import (
	"sort"
)

// DefaultQuickWinMonths is the payoff horizon, in months, under which a
// small first-target loan counts as a quick win and tips selection
// toward the Snowball strategy.
const DefaultQuickWinMonths = 2

// =============================================================================
// SELECTOR
// =============================================================================

// Selector chooses between Avalanche and Snowball orderings.
type Selector struct {
	// QuickWinMonths is the quick-win payoff threshold. Zero or
	// negative falls back to DefaultQuickWinMonths.
	QuickWinMonths int
}

// NewSelector returns a Selector with the default quick-win threshold.
func NewSelector() *Selector {
	return &Selector{QuickWinMonths: DefaultQuickWinMonths}
}

// Select decides the repayment ordering for the plan. The input is not
// mutated; both candidate orderings sort copies of the loan slice.
//
// Fails with ErrInvalidInput when the plan has no loans. The quick-win
// probe needs a simulable plan; when simulation of the snowball ordering
// fails (e.g. the caller skipped validation), selection falls back to
// Avalanche rather than surfacing the simulation error.
func (s *Selector) Select(plan Plan) (RepaymentOrdering, error) {
	if len(plan.Loans) == 0 {
		return RepaymentOrdering{}, &InvalidInputError{Field: "loans", Reason: "must not be empty"}
	}

	avalanche := OrderLoans(plan.Loans, StrategyAvalanche)
	snowball := OrderLoans(plan.Loans, StrategySnowball)

	threshold := s.QuickWinMonths
	if threshold <= 0 {
		threshold = DefaultQuickWinMonths
	}

	// Quick-win probe: simulate the snowball ordering and check how fast
	// its first target retires with the full disposable income behind it.
	sim := NewSimulator()
	schedule, err := sim.Simulate(snowball, plan.Income, plan.Expenses)
	if err == nil {
		first := snowball.Loans[0].Name
		if m := schedule.PayoffMonth(first); m > 0 && m <= threshold {
			return snowball, nil
		}
	}

	return avalanche, nil
}

// =============================================================================
// ORDERINGS
// =============================================================================

// OrderLoans returns the strategy's permutation of the given loans. The
// input slice is never mutated.
func OrderLoans(loans []Loan, strategy StrategyName) RepaymentOrdering {
	ordered := make([]Loan, len(loans))
	copy(ordered, loans)

	switch strategy {
	case StrategySnowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			if !ordered[i].Balance.Equal(ordered[j].Balance) {
				return ordered[i].Balance.LessThan(ordered[j].Balance)
			}
			return ordered[i].InterestRate.GreaterThan(ordered[j].InterestRate)
		})
	default: // Avalanche
		sort.SliceStable(ordered, func(i, j int) bool {
			if !ordered[i].InterestRate.Equal(ordered[j].InterestRate) {
				return ordered[i].InterestRate.GreaterThan(ordered[j].InterestRate)
			}
			return ordered[i].Balance.GreaterThan(ordered[j].Balance)
		})
	}

	return RepaymentOrdering{Strategy: strategy, Loans: ordered}
}
