/*
summary.go - Derived figures over transactions and budgets

PURPOSE:
  Pure computations the overview screens are built from: total income,
  expenses and balance; per-category spending for a month; and budget
  utilization (spent vs cap per category).

SEE ALSO:
  - types.go: The records summarized here
*/
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TOTALS
// =============================================================================

// Totals is the wallet-wide cash position.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal // income - expenses
}

// Summarize computes totals across all given transactions.
func Summarize(txs []Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case TypeExpense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}

// =============================================================================
// CATEGORY SPENDING
// =============================================================================

// SpendingByCategory sums expense amounts per category for one month
// (YYYY-MM). Income transactions are ignored.
func SpendingByCategory(txs []Transaction, month string) map[Category]decimal.Decimal {
	spending := make(map[Category]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != TypeExpense || MonthOf(tx.Date) != month {
			continue
		}
		spending[tx.Category] = spending[tx.Category].Add(tx.Amount)
	}
	return spending
}

// =============================================================================
// BUDGET REPORT
// =============================================================================

// BudgetStatus is one budget's utilization for its month.
type BudgetStatus struct {
	Budget    Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal // negative when over budget
	Over      bool
}

// BudgetReport computes utilization for each budget against the month's
// spending. Results are sorted by category for stable output.
func BudgetReport(budgets []Budget, txs []Transaction) []BudgetStatus {
	report := make([]BudgetStatus, 0, len(budgets))
	byMonth := make(map[string]map[Category]decimal.Decimal)

	for _, b := range budgets {
		spending, ok := byMonth[b.Month]
		if !ok {
			spending = SpendingByCategory(txs, b.Month)
			byMonth[b.Month] = spending
		}

		spent := spending[b.Category]
		remaining := b.Amount.Sub(spent)
		report = append(report, BudgetStatus{
			Budget:    b,
			Spent:     spent,
			Remaining: remaining,
			Over:      remaining.IsNegative(),
		})
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].Budget.Month != report[j].Budget.Month {
			return report[i].Budget.Month < report[j].Budget.Month
		}
		return report[i].Budget.Category < report[j].Budget.Category
	})
	return report
}
