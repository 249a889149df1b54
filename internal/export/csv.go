package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
)

// totalsRows builds the totals section shared by the CSV and XLSX
// exports: subtotal always, the conditional discount/tax/charges rows,
// then the total.
func totalsRows(inv *model.InvoiceData) [][]string {
	rows := [][]string{
		{"Subtotal", "", "", money.Format(inv.Subtotal)},
	}
	if money.IsPositive(inv.DiscountValue) {
		label := "Discount"
		if inv.DiscountType == model.DiscountPercentage {
			label = fmt.Sprintf("Discount (%s%%)", inv.DiscountValue.String())
		}
		rows = append(rows, []string{label, "", "", money.Format(inv.DiscountAmount)})
	}
	if money.IsPositive(inv.TaxRate) {
		rows = append(rows, []string{fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()), "", "", money.Format(inv.TaxAmount)})
	}
	if money.IsPositive(inv.AdditionalCharges) {
		rows = append(rows, []string{"Additional Charges", "", "", money.Format(inv.AdditionalCharges)})
	}
	return append(rows, []string{"Total", "", "", money.Format(inv.Total)})
}

func itemRow(it model.LineItem) []string {
	return []string{
		it.Description,
		it.Quantity.String(),
		money.Format(it.UnitPrice),
		money.Format(it.Amount),
	}
}

// exportCSV serializes items and the totals section as delimited rows.
// The csv writer quotes any field containing the delimiter.
func (p *Pipeline) exportCSV(inv *model.InvoiceData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Description", "Quantity", "Unit Price", "Amount"}}
	for _, it := range inv.Items {
		records = append(records, itemRow(it))
	}
	records = append(records, []string{"", "", "", ""})
	records = append(records, totalsRows(inv)...)

	if err := w.WriteAll(records); err != nil {
		return nil, model.NewExportError(string(FormatCSV), "write", err)
	}
	return buf.Bytes(), nil
}
