/*
planner.go - Plan validation and the combined entry point

PURPOSE:
  Ties the engine together for callers: validate the plan, select a
  strategy, simulate it. The API layer calls Build and nothing else.

VALIDATION ORDER:
  1. Loan shape: non-empty list, unique non-empty names, positive
     balances, non-negative rates, positive minimum payments
  2. Plan shape: positive income, non-negative expenses
  3. Affordability: income - expenses >= sum(minimum payments)

  Affordability violations are a hard failure (ErrInsufficientIncome),
  not a degraded simulation: the engine never models partial payment of
  minimums.

SEE ALSO:
  - strategy.go, simulator.go: The two components Build composes
*/
package debt

// =============================================================================
// PLANNER
// =============================================================================

// Planner validates a plan, selects a strategy, and simulates it.
type Planner struct {
	Selector  *Selector
	Simulator *Simulator
}

// NewPlanner returns a Planner with default selector and simulator.
func NewPlanner() *Planner {
	return &Planner{
		Selector:  NewSelector(),
		Simulator: NewSimulator(),
	}
}

// Build produces the full repayment schedule for the plan. All errors
// are detected synchronously; either a complete terminated schedule is
// returned or none is.
func (p *Planner) Build(plan Plan) (*RepaymentSchedule, error) {
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	ordering, err := p.Selector.Select(plan)
	if err != nil {
		return nil, err
	}

	return p.Simulator.Simulate(ordering, plan.Income, plan.Expenses)
}

// ValidatePlan checks every precondition in §VALIDATION ORDER above.
func ValidatePlan(plan Plan) error {
	if err := validateLoans(plan.Loans); err != nil {
		return err
	}

	if !plan.Income.IsPositive() {
		return &InvalidInputError{Field: "income", Value: plan.Income, Reason: "must be positive"}
	}
	if plan.Expenses.IsNegative() {
		return &InvalidInputError{Field: "expenses", Value: plan.Expenses, Reason: "must be non-negative"}
	}

	disposable := plan.Disposable()
	minimums := plan.TotalMinimumPayments()
	if disposable.LessThan(minimums) {
		return &InsufficientIncomeError{
			Disposable:      disposable,
			MinimumPayments: minimums,
			Shortfall:       minimums.Sub(disposable),
		}
	}
	return nil
}
