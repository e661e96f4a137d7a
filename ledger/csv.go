/*
csv.go - Transaction export

PURPOSE:
  Streams transactions as CSV for download/backup. Amounts are written
  with two decimal places; dates as RFC 3339.
*/
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{"id", "type", "amount", "category", "date", "recurrence", "account_id"}

// WriteCSV writes the transactions to w as CSV, header first.
func WriteCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.ID,
			string(tx.Type),
			tx.Amount.StringFixed(2),
			string(tx.Category),
			tx.Date.Format(time.RFC3339),
			string(tx.Recurrence),
			tx.AccountID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record %s: %w", tx.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
