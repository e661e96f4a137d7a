/*
errors.go - Centralized error types for the debt engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP statuses without string-parsing.

ERROR CATEGORIES:
  1. Input errors - Malformed loans/plans (ErrInvalidInput)
  2. Affordability errors - Minimums exceed disposable income
     (ErrInsufficientIncome)
  3. Simulation errors - Schedule never terminates (ErrScheduleDivergent)

USAGE:
  if errors.Is(err, debt.ErrInsufficientIncome) {
      // prompt the user to review their budget
  }

SEE ALSO:
  - planner.go: Validation that raises input errors
  - simulator.go: Raises ErrScheduleDivergent at the iteration cap
*/
package debt

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned for malformed plans: empty loan list,
	// non-positive balance, negative interest rate, non-positive minimum
	// payment, or duplicate loan names.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientIncome is returned when income minus expenses does
	// not cover the sum of minimum payments. The engine never simulates
	// partial payment of minimums.
	ErrInsufficientIncome = errors.New("insufficient income for minimum payments")

	// ErrScheduleDivergent is returned when the iteration cap is reached
	// without every balance hitting zero. Indicates pathological input
	// such as interest outpacing the payment capacity.
	ErrScheduleDivergent = errors.New("repayment schedule does not converge")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending values
// =============================================================================

// InvalidInputError describes which field of which loan (or of the plan
// itself, when LoanName is empty) failed validation.
type InvalidInputError struct {
	LoanName string
	Field    string
	Value    decimal.Decimal
	Reason   string
}

func (e *InvalidInputError) Error() string {
	if e.LoanName == "" {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: loan %q %s %s (got %v)",
		e.LoanName, e.Field, e.Reason, e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// InsufficientIncomeError details the affordability shortfall.
type InsufficientIncomeError struct {
	Disposable      decimal.Decimal // income - expenses
	MinimumPayments decimal.Decimal
	Shortfall       decimal.Decimal
}

func (e *InsufficientIncomeError) Error() string {
	return fmt.Sprintf("insufficient income: disposable %v does not cover minimum payments %v (short %v)",
		e.Disposable, e.MinimumPayments, e.Shortfall)
}

func (e *InsufficientIncomeError) Unwrap() error {
	return ErrInsufficientIncome
}

// ScheduleDivergentError reports the balance left at the iteration cap.
type ScheduleDivergentError struct {
	MaxMonths        int
	RemainingBalance decimal.Decimal
}

func (e *ScheduleDivergentError) Error() string {
	return fmt.Sprintf("schedule divergent: %v still outstanding after %d months",
		e.RemainingBalance, e.MaxMonths)
}

func (e *ScheduleDivergentError) Unwrap() error {
	return ErrScheduleDivergent
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than a simulation failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInsufficientIncome)
}
