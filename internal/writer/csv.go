// Package writer serializes parse results for the CLI.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/finlens/statement-insights/internal/models"
)

var csvHeader = []string{"Date", "Description", "Category", "Type", "Amount", "Balance"}

// WriteCSV writes the transactions as CSV. The balance column is empty
// for issuers that do not expose a running balance.
func WriteCSV(w io.Writer, transactions []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, txn := range transactions {
		balance := ""
		if txn.Balance != nil {
			balance = strconv.FormatFloat(*txn.Balance, 'f', 2, 64)
		}
		record := []string{
			txn.Date.Format(models.DateFormat),
			txn.Description,
			txn.Category,
			txn.Type(),
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			balance,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
