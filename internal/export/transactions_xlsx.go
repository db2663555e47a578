package export

import (
	"fmt"

	"sudarshan-portal/internal/models"

	"github.com/xuri/excelize/v2"
)

const transactionsSheet = "Transactions"

// XLSXContentType is the MIME type of TransactionsXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransactionsXLSX writes one row per transaction under a header row.
func TransactionsXLSX(txs []*models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Date", "Category", "Amount", "Description"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(transactionsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for idx, tx := range txs {
		row := idx + 2

		description := ""
		if tx.Description != nil {
			description = *tx.Description
		}

		values := []any{
			tx.Date.UTC().Format("2006-01-02 15:04:05"),
			tx.Category,
			tx.Amount,
			description,
		}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			if err := f.SetCellValue(transactionsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(transactionsSheet, "A", "A", 20)
	_ = f.SetColWidth(transactionsSheet, "B", "B", 12)
	_ = f.SetColWidth(transactionsSheet, "C", "C", 14)
	_ = f.SetColWidth(transactionsSheet, "D", "D", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
