package ledger_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raimal54/chai-wallet/ledger"
)

func TestWriteCSV(t *testing.T) {
	txs := []ledger.Transaction{
		tx("t1", ledger.TypeIncome, "50000", ledger.CategorySalary, march(1)),
		{
			ID:         "t2",
			Type:       ledger.TypeExpense,
			Amount:     dec("1250.5"),
			Category:   ledger.CategoryRent,
			Date:       march(2),
			Recurrence: ledger.RecurMonthly,
			AccountID:  "acc-2",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ledger.WriteCSV(&buf, txs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "type", "amount", "category", "date", "recurrence", "account_id"}, records[0])
	assert.Equal(t, "t1", records[1][0])
	assert.Equal(t, "50000.00", records[1][2])
	assert.Equal(t, "monthly", records[2][5])
	assert.Equal(t, "acc-2", records[2][6])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ledger.WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}
