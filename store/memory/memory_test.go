package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raimal54/chai-wallet/ledger"
	"github.com/Raimal54/chai-wallet/store/memory"
)

func tx(id string, txType ledger.TransactionType, amount string, category ledger.Category, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:       id,
		Type:     txType,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
	}
}

func TestTransactions_NewestFirst(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	older := tx("t1", ledger.TypeExpense, "20", ledger.CategoryTransport,
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	newer := tx("t2", ledger.TypeIncome, "3000", ledger.CategorySalary,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, s.AddTransaction(ctx, older))
	require.NoError(t, s.AddTransaction(ctx, newer))

	got, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[0].ID)

	err = s.AddTransaction(ctx, older)
	assert.ErrorIs(t, err, ledger.ErrDuplicateID)
}

func TestRecurringFilter(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	recurring := tx("t1", ledger.TypeExpense, "1200", ledger.CategoryRent, time.Now().UTC())
	recurring.Recurrence = ledger.RecurMonthly
	require.NoError(t, s.AddTransaction(ctx, recurring))
	require.NoError(t, s.AddTransaction(ctx,
		tx("t2", ledger.TypeExpense, "15", ledger.CategoryEntertainment, time.Now().UTC())))

	got, err := s.ListRecurringTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestBudgets_UpsertReplaces(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.UpsertBudget(ctx, ledger.Budget{
		ID: "b1", Category: ledger.CategoryGroceries,
		Amount: decimal.RequireFromString("400"), Month: "2026-03",
	}))
	require.NoError(t, s.UpsertBudget(ctx, ledger.Budget{
		ID: "b2", Category: ledger.CategoryGroceries,
		Amount: decimal.RequireFromString("450"), Month: "2026-03",
	}))

	got, err := s.ListBudgets(ctx, "2026-03")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)
}

func TestGoals_Lifecycle(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	goal := ledger.Goal{
		ID: "g1", Name: "Vacation",
		TargetAmount:  decimal.RequireFromString("2000"),
		CurrentAmount: decimal.Zero,
	}
	require.NoError(t, s.AddGoal(ctx, goal))

	goal.CurrentAmount = decimal.RequireFromString("500")
	require.NoError(t, s.UpdateGoal(ctx, goal))

	got, err := s.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CurrentAmount.Equal(decimal.RequireFromString("500")))

	require.NoError(t, s.DeleteGoal(ctx, "g1"))
	assert.ErrorIs(t, s.DeleteGoal(ctx, "g1"), ledger.ErrNotFound)
}

func TestAccounts(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.AddAccount(ctx, ledger.Account{ID: "a1", Name: "Checking"}))
	assert.ErrorIs(t, s.AddAccount(ctx, ledger.Account{ID: "a1", Name: "Again"}), ledger.ErrDuplicateID)

	got, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
