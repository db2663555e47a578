// Package export renders stored records as downloadable files.
package export

import (
	"bytes"
	"fmt"

	"sudarshan-portal/internal/models"

	"github.com/phpdave11/gofpdf"
)

// ReportPDF renders a daily report on a single A4 page.
func ReportPDF(r *models.DailyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sudarshan Daily Business Report", false)
	pdf.AddPage()

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Daily Business Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", r.Date.UTC().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 8, tr(fmt.Sprintf("User: %s", r.UserID)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Amount (Rs.)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label  string
		amount float64
	}{
		{"Sales", r.SalesTotal},
		{"Purchase", r.PurchaseTotal},
		{"Expense", r.ExpenseTotal},
		{"Net", r.NetAmount},
	}
	for _, row := range rows {
		pdf.CellFormat(70, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", row.amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Insights")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(r.Insights), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Action Points")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, point := range r.ActionPoints {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, point)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
