package expense

import (
	"encoding/csv"
	"fmt"
	"io"

	"extras-cli/internal/model"
)

var csvHeader = []string{"Date", "Merchant", "Category", "Amount", "Status"}

// WriteCSV writes list as Date,Merchant,Category,Amount,Status rows.
// Amount is a plain decimal without separators or currency.
func WriteCSV(w io.Writer, list []model.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range list {
		row := []string{
			e.Date,
			e.Merchant,
			string(e.Category),
			fmt.Sprintf("%d.%02d", e.AmountCents/100, e.AmountCents%100),
			string(e.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
