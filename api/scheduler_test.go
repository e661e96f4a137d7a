package api

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

func schedulerAt(store ledger.Store, asOf time.Time) *RecurringScheduler {
	s := NewRecurringScheduler(store)
	s.now = func() time.Time { return asOf }
	return s
}

func TestRunOnce_PostsDueOccurrencesAndAdvancesTemplate(t *testing.T) {
	// GIVEN a monthly rent template dated two months back
	store := memory.New()
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	template := ledger.Transaction{
		ID:         "rent",
		Type:       ledger.TypeExpense,
		Amount:     decimal.RequireFromString("1200"),
		Category:   ledger.CategoryRent,
		Date:       start,
		Recurrence: ledger.RecurMonthly,
	}
	require.NoError(t, store.AddTransaction(ctx, template))

	// WHEN the scheduler runs in early March
	s := schedulerAt(store, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.RunOnce(ctx))

	// THEN February and March occurrences are posted as one-offs
	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3) // template + 2 posted

	var posted []ledger.Transaction
	for _, tx := range txs {
		if tx.ID != "rent" {
			posted = append(posted, tx)
			assert.Empty(t, tx.Recurrence)
			assert.True(t, tx.Amount.Equal(template.Amount))
		}
	}
	require.Len(t, posted, 2)

	// AND the template advanced to the last posted occurrence
	recurring, err := store.ListRecurringTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, recurring, 1)
	assert.True(t, recurring[0].Date.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRunOnce_Idempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	template := ledger.Transaction{
		ID:         "salary",
		Type:       ledger.TypeIncome,
		Amount:     decimal.RequireFromString("3000"),
		Category:   ledger.CategorySalary,
		Date:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Recurrence: ledger.RecurMonthly,
	}
	require.NoError(t, store.AddTransaction(ctx, template))

	s := schedulerAt(store, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.RunOnce(ctx))
	require.NoError(t, s.RunOnce(ctx))

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2) // template + exactly one February posting
}

func TestRunOnce_NothingDue(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	template := ledger.Transaction{
		ID:         "gym",
		Type:       ledger.TypeExpense,
		Amount:     decimal.RequireFromString("40"),
		Category:   ledger.CategoryHealth,
		Date:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Recurrence: ledger.RecurMonthly,
	}
	require.NoError(t, store.AddTransaction(ctx, template))

	s := schedulerAt(store, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.RunOnce(ctx))

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
