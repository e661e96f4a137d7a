/*
Package ledger provides the personal-finance record types and their
derived figures: transactions, accounts, budgets, and savings goals.

PURPOSE:
  Everything the wallet tracks outside of debt planning lives here. The
  package owns the category taxonomy, validation of records, summary
  math (income/expenses/balance, per-category spending vs budget), the
  recurring-transaction expansion, and CSV export.

KEY CONCEPTS IN THIS FILE (types.go):
  - Transaction: One income or expense entry, optionally recurring
  - Account: A named bucket transactions belong to
  - Budget: A monthly spending cap for one expense category
  - Goal: A savings target with contributions and a deadline

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all money amounts
  2. Ports over globals: persistence is an injected Store interface
     (store.go), never ambient state
  3. Pure derivations: summaries and recurrence expansion are pure
     functions over records

SEE ALSO:
  - store.go: Persistence port
  - summary.go: Derived totals and budget reports
  - recurrence.go: Due-occurrence expansion for recurring transactions
  - csv.go: Transaction export
*/
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Category labels a transaction within its type's taxonomy.
type Category string

// Income categories.
const (
	CategorySalary   Category = "Salary"
	CategoryInterest Category = "Interest"
	CategoryGifts    Category = "Gifts"
)

// Expense categories.
const (
	CategoryRent          Category = "Rent"
	CategoryGroceries     Category = "Groceries"
	CategoryBills         Category = "Bills"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
)

// CategoryOther is valid for both transaction types.
const CategoryOther Category = "Other"

// IncomeCategories lists the valid categories for income transactions.
var IncomeCategories = []Category{
	CategorySalary, CategoryInterest, CategoryGifts, CategoryOther,
}

// ExpenseCategories lists the valid categories for expense transactions.
var ExpenseCategories = []Category{
	CategoryRent, CategoryGroceries, CategoryBills, CategoryTransport,
	CategoryEntertainment, CategoryHealth, CategoryShopping, CategoryOther,
}

// ValidCategory reports whether the category belongs to the type's
// taxonomy.
func ValidCategory(txType TransactionType, category Category) bool {
	var set []Category
	switch txType {
	case TypeIncome:
		set = IncomeCategories
	case TypeExpense:
		set = ExpenseCategories
	default:
		return false
	}
	for _, c := range set {
		if c == category {
			return true
		}
	}
	return false
}

// =============================================================================
// RECURRENCE
// =============================================================================

// Recurrence is how often a recurring transaction repeats.
type Recurrence string

const (
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

// Valid reports whether the recurrence is a known frequency.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// =============================================================================
// RECORDS
// =============================================================================

// Transaction is one income or expense entry. A non-empty Recurrence
// marks it as a recurring template whose occurrences are expanded by
// DueOccurrences and posted by the scheduler.
type Transaction struct {
	ID         string
	Type       TransactionType
	Amount     decimal.Decimal
	Category   Category
	Date       time.Time
	Recurrence Recurrence // empty for one-off transactions
	AccountID  string
}

// Validate checks the transaction's shape.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction: %w: id must not be empty", ErrInvalidRecord)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction %s: %w: amount must be positive", t.ID, ErrInvalidRecord)
	}
	if !ValidCategory(t.Type, t.Category) {
		return fmt.Errorf("transaction %s: %w: category %q invalid for type %q",
			t.ID, ErrInvalidRecord, t.Category, t.Type)
	}
	if t.Recurrence != "" && !t.Recurrence.Valid() {
		return fmt.Errorf("transaction %s: %w: unknown recurrence %q", t.ID, ErrInvalidRecord, t.Recurrence)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %s: %w: date must be set", t.ID, ErrInvalidRecord)
	}
	return nil
}

// Account is a named bucket transactions belong to.
type Account struct {
	ID   string
	Name string
}

// Budget caps spending for one expense category in one month.
// Month uses the YYYY-MM format; one budget exists per category+month.
type Budget struct {
	ID       string
	Category Category
	Amount   decimal.Decimal
	Month    string
}

// Validate checks the budget's shape.
func (b Budget) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("budget: %w: id must not be empty", ErrInvalidRecord)
	}
	if !ValidCategory(TypeExpense, b.Category) {
		return fmt.Errorf("budget %s: %w: %q is not an expense category", b.ID, ErrInvalidRecord, b.Category)
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("budget %s: %w: amount must be positive", b.ID, ErrInvalidRecord)
	}
	if _, err := time.Parse(monthLayout, b.Month); err != nil {
		return fmt.Errorf("budget %s: %w: month %q is not YYYY-MM", b.ID, ErrInvalidRecord, b.Month)
	}
	return nil
}

// Goal is a savings target.
type Goal struct {
	ID            string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
}

// Validate checks the goal's shape.
func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal: %w: id must not be empty", ErrInvalidRecord)
	}
	if g.Name == "" {
		return fmt.Errorf("goal %s: %w: name must not be empty", g.ID, ErrInvalidRecord)
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("goal %s: %w: target must be positive", g.ID, ErrInvalidRecord)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("goal %s: %w: current amount must be non-negative", g.ID, ErrInvalidRecord)
	}
	return nil
}

// Progress returns how much of the target has been saved, in percent,
// capped at 100.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

const monthLayout = "2006-01"

// MonthOf returns the YYYY-MM key for a date, matching Budget.Month.
func MonthOf(t time.Time) string {
	return t.Format(monthLayout)
}
