package debt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raimal54/chai-wallet/debt"
)

// =============================================================================
// ORDERING TESTS
// =============================================================================

func TestOrderLoans_Avalanche_RateDescending(t *testing.T) {
	loans := []debt.Loan{
		loan("A", "1000", "5", "50"),
		loan("B", "1000", "20", "50"),
		loan("C", "1000", "12", "50"),
	}

	ordering := debt.OrderLoans(loans, debt.StrategyAvalanche)

	names := orderedNames(ordering)
	assert.Equal(t, []string{"B", "C", "A"}, names)
	// Input untouched.
	assert.Equal(t, "A", loans[0].Name)
}

func TestOrderLoans_Avalanche_RateTie_BalanceDescending(t *testing.T) {
	loans := []debt.Loan{
		loan("Small", "1000", "10", "50"),
		loan("Big", "8000", "10", "50"),
	}

	ordering := debt.OrderLoans(loans, debt.StrategyAvalanche)
	assert.Equal(t, []string{"Big", "Small"}, orderedNames(ordering))
}

func TestOrderLoans_Snowball_BalanceAscending(t *testing.T) {
	loans := []debt.Loan{
		loan("Mid", "3000", "10", "50"),
		loan("Tiny", "500", "5", "50"),
		loan("Huge", "9000", "25", "50"),
	}

	ordering := debt.OrderLoans(loans, debt.StrategySnowball)
	assert.Equal(t, []string{"Tiny", "Mid", "Huge"}, orderedNames(ordering))
}

func TestOrderLoans_Snowball_BalanceTie_RateDescending(t *testing.T) {
	// Equal balances: the costlier loan goes first so the tie costs
	// as little interest as possible.
	loans := []debt.Loan{
		loan("Cheap", "5000", "5", "200"),
		loan("Costly", "5000", "20", "200"),
	}

	ordering := debt.OrderLoans(loans, debt.StrategySnowball)
	assert.Equal(t, []string{"Costly", "Cheap"}, orderedNames(ordering))
}

func TestOrderLoans_FullTie_PreservesInputOrder(t *testing.T) {
	loans := []debt.Loan{
		loan("First", "2000", "10", "100"),
		loan("Second", "2000", "10", "100"),
	}

	assert.Equal(t, []string{"First", "Second"},
		orderedNames(debt.OrderLoans(loans, debt.StrategyAvalanche)))
	assert.Equal(t, []string{"First", "Second"},
		orderedNames(debt.OrderLoans(loans, debt.StrategySnowball)))
}

// =============================================================================
// SELECTION TESTS
// =============================================================================

func TestSelect_DefaultsToAvalanche(t *testing.T) {
	plan := debt.Plan{
		Income:   dec("3000"),
		Expenses: dec("2000"),
		Loans: []debt.Loan{
			loan("Car Loan", "5000", "20", "200"),
			loan("Personal Loan", "4000", "12", "200"),
		},
	}

	ordering, err := debt.NewSelector().Select(plan)
	require.NoError(t, err)
	assert.Equal(t, debt.StrategyAvalanche, ordering.Strategy)
	assert.Equal(t, "Car Loan", ordering.Loans[0].Name)
}

func TestSelect_QuickWin_SwitchesToSnowball(t *testing.T) {
	// The tiny loan retires in month 1 with the full disposable income
	// behind it, which satisfies the 2-month quick-win rule.
	plan := debt.Plan{
		Income:   dec("2000"),
		Expenses: dec("1050"),
		Loans: []debt.Loan{
			loan("Credit Card", "10000", "25", "300"),
			loan("Tiny Loan", "150", "10", "150"),
		},
	}

	ordering, err := debt.NewSelector().Select(plan)
	require.NoError(t, err)
	assert.Equal(t, debt.StrategySnowball, ordering.Strategy)
	assert.Equal(t, "Tiny Loan", ordering.Loans[0].Name)
}

func TestSelect_QuickWinThreshold_Configurable(t *testing.T) {
	// With the threshold lowered to 1 month, a loan that needs 2 months
	// no longer counts as a quick win.
	plan := debt.Plan{
		Income:   dec("1000"),
		Expenses: dec("400"),
		Loans: []debt.Loan{
			loan("Credit Card", "10000", "25", "300"),
			loan("Small Loan", "600", "0", "100"),
		},
	}

	def, err := debt.NewSelector().Select(plan)
	require.NoError(t, err)
	assert.Equal(t, debt.StrategySnowball, def.Strategy, "600 at 300/month retires in month 2")

	strict := &debt.Selector{QuickWinMonths: 1}
	ordering, err := strict.Select(plan)
	require.NoError(t, err)
	assert.Equal(t, debt.StrategyAvalanche, ordering.Strategy)
}

func TestSelect_Deterministic(t *testing.T) {
	plan := debt.Plan{
		Income:   dec("3000"),
		Expenses: dec("2000"),
		Loans: []debt.Loan{
			loan("A", "5000", "20", "200"),
			loan("B", "5000", "5", "200"),
		},
	}

	sel := debt.NewSelector()
	first, err := sel.Select(plan)
	require.NoError(t, err)
	second, err := sel.Select(plan)
	require.NoError(t, err)

	assert.Equal(t, first.Strategy, second.Strategy)
	assert.Equal(t, orderedNames(first), orderedNames(second))
}

func TestSelect_EmptyLoans_InvalidInput(t *testing.T) {
	_, err := debt.NewSelector().Select(debt.Plan{Income: dec("1000")})
	assert.ErrorIs(t, err, debt.ErrInvalidInput)
}

func orderedNames(o debt.RepaymentOrdering) []string {
	names := make([]string, len(o.Loans))
	for i, l := range o.Loans {
		names[i] = l.Name
	}
	return names
}
