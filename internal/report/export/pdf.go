package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the table as a paginated A4 report: a title block
// followed by a fixed-width table that flows across pages.
func WritePDF(t Table, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Kadu Academy - Student Test Results Report", "", 1, "C", false, 0, "")

	title := t.Title
	if title == "" {
		title = "Selected Test"
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Test: "+title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Audience: "+t.Audience, "", 1, "L", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, "Date: "+t.GeneratedAt.Format("02-01-2006"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(5)

	if len(t.Columns) == 0 {
		return fmt.Errorf("pdf: table has no columns")
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Columns))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	for _, h := range t.Columns {
		pdf.CellFormat(colW, 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, cells := range t.Rows {
		for _, v := range cells {
			pdf.CellFormat(colW, 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
