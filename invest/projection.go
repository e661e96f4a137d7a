/*
Package invest projects the growth of a recurring monthly investment.

PURPOSE:
  Deterministic SIP (systematic investment plan) compounding: every
  month the contribution is added and the running value grows by the
  monthly rate (annual rate / 12 / 100). One data point is emitted per
  year: total invested vs projected value.

USAGE:
  points, err := invest.Project(invest.Input{
      MonthlyAmount: decimal.NewFromInt(10000),
      AnnualRate:    decimal.NewFromInt(12),
      Years:         10,
  })
*/
package invest

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxYears bounds the projection horizon.
const MaxYears = 50

// ErrInvalidInput is returned for out-of-range projection inputs.
var ErrInvalidInput = errors.New("invalid projection input")

// Input describes the recurring investment to project.
type Input struct {
	MonthlyAmount decimal.Decimal
	AnnualRate    decimal.Decimal // percentage, e.g. 12 for 12% p.a.
	Years         int
}

// YearPoint is one year-end snapshot of the projection.
type YearPoint struct {
	Year     int
	Invested decimal.Decimal // contributions so far
	Value    decimal.Decimal // projected value with growth
}

// Project computes the year-by-year projection.
func Project(in Input) ([]YearPoint, error) {
	if !in.MonthlyAmount.IsPositive() {
		return nil, fmt.Errorf("%w: monthly amount must be positive", ErrInvalidInput)
	}
	if in.AnnualRate.IsNegative() {
		return nil, fmt.Errorf("%w: annual rate must be non-negative", ErrInvalidInput)
	}
	if in.Years <= 0 || in.Years > MaxYears {
		return nil, fmt.Errorf("%w: years must be in 1..%d", ErrInvalidInput, MaxYears)
	}

	monthlyRate := in.AnnualRate.Div(decimal.NewFromInt(1200))
	growth := decimal.NewFromInt(1).Add(monthlyRate)
	twelve := decimal.NewFromInt(12)

	value := decimal.Zero
	points := make([]YearPoint, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		for month := 0; month < 12; month++ {
			value = value.Add(in.MonthlyAmount).Mul(growth)
		}
		points = append(points, YearPoint{
			Year:     year,
			Invested: in.MonthlyAmount.Mul(twelve).Mul(decimal.NewFromInt(int64(year))),
			Value:    value.Round(2),
		})
	}
	return points, nil
}
