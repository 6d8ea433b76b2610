package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/satheeshds/invoicer/models"
)

// WriteCSV writes one row per invoice under the header
// Number,Date,Client,Status,Amount (<currency>).
func WriteCSV(w io.Writer, invoices []models.Invoice, currency string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Number", "Date", "Client", "Status", fmt.Sprintf("Amount (%s)", currency)}); err != nil {
		return err
	}
	for _, inv := range invoices {
		date := ""
		if !inv.Date.IsZero() {
			date = inv.Date.Format(models.DateLayout)
		}
		row := []string{inv.Number, date, inv.ClientName, string(inv.Status.OrPending()), inv.Total.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
