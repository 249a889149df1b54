package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rezonia/invoice-studio/internal/model"
)

// exportXLSX writes the same tabular content as the CSV export into a
// spreadsheet worksheet.
func (p *Pipeline) exportXLSX(inv *model.InvoiceData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoice"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, model.NewExportError(string(FormatXLSX), "sheet", err)
	}

	row := 1
	writeRow := func(cells []string) error {
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	rows := [][]string{{"Description", "Quantity", "Unit Price", "Amount"}}
	for _, it := range inv.Items {
		rows = append(rows, itemRow(it))
	}
	rows = append(rows, []string{})
	rows = append(rows, totalsRows(inv)...)

	for _, cells := range rows {
		if err := writeRow(cells); err != nil {
			return nil, model.NewExportError(string(FormatXLSX), "write", err)
		}
	}

	for col, width := range map[string]float64{"A": 42, "B": 12, "C": 14, "D": 14} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, model.NewExportError(string(FormatXLSX), "layout", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, model.NewExportError(string(FormatXLSX), "encode", err)
	}
	if buf.Len() == 0 {
		return nil, model.NewExportError(string(FormatXLSX), "encode", fmt.Errorf("empty workbook"))
	}
	return buf.Bytes(), nil
}
