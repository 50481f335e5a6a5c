// backend/src/report/xlsx.go
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/username/saathi/backend/src/models"
	"github.com/username/saathi/backend/src/normalizer"
)

const transactionsSheet = "Transactions"

// BuildXLSX returns an XLSX workbook of the normalized table, one row per
// transaction in export column order.
func BuildXLSX(txs []models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(transactionsSheet)
	if err != nil {
		return nil, fmt.Errorf("report: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("report: drop default sheet: %w", err)
	}

	header, rows := normalizer.ExportRows(txs)
	for col, name := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, name); err != nil {
			return nil, fmt.Errorf("report: write header: %w", err)
		}
	}
	for r, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(transactionsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("report: write row %d: %w", r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
