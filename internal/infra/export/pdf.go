package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/runoshun/duelist/internal/presenter"
)

// Column widths in mm. They add up to the printable A4 width.
const (
	pdfDoneWidth   = 12.0
	pdfTaskWidth   = 108.0
	pdfDueWidth    = 40.0
	pdfStatusWidth = 30.0
	pdfLineHeight  = 6.0
)

// WritePDF writes rows as a printable A4 checklist table.
func WritePDF(w io.Writer, title string, rows []presenter.Row) error {
	pdf := renderPDF(title, rows)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func renderPDF(title string, rows []presenter.Row) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(title))
	pdf.Ln(12)

	pdfHeader(pdf)
	pdf.SetFont("Arial", "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(pdfDoneWidth+pdfTaskWidth+pdfDueWidth+pdfStatusWidth, pdfLineHeight,
			"No tasks yet", "1", 1, "C", false, 0, "")
	}

	_, pageHeight := pdf.GetPageSize()
	_, bottom := pdf.GetAutoPageBreak()
	for _, row := range rows {
		text := tr(row.Text)
		lines := pdf.SplitLines([]byte(text), pdfTaskWidth)
		height := pdfLineHeight * float64(max(len(lines), 1))

		// Rows are never split across pages
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
			pdfHeader(pdf)
			pdf.SetFont("Arial", "", 10)
		}
		if row.Overdue && !row.Completed {
			pdf.SetTextColor(200, 30, 30)
		}

		box, status := "", ""
		switch {
		case row.Completed:
			box, status = "x", "done"
		case row.Overdue:
			status = "overdue"
		}

		left, top := pdf.GetXY()
		pdf.CellFormat(pdfDoneWidth, height, box, "1", 0, "C", false, 0, "")
		pdf.MultiCell(pdfTaskWidth, pdfLineHeight, text, "1", "L", false)
		// Short texts leave the task cell shorter than the row
		pdf.Rect(left+pdfDoneWidth, top, pdfTaskWidth, height, "D")
		pdf.SetXY(left+pdfDoneWidth+pdfTaskWidth, top)
		pdf.CellFormat(pdfDueWidth, height, tr(row.Due), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfStatusWidth, height, status, "1", 0, "L", false, 0, "")
		pdf.SetXY(left, top+height)
		pdf.SetTextColor(0, 0, 0)
	}
	return pdf
}

func pdfHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(pdfDoneWidth, pdfLineHeight, "", "1", 0, "C", true, 0, "")
	pdf.CellFormat(pdfTaskWidth, pdfLineHeight, "Task", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfDueWidth, pdfLineHeight, "Due", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfStatusWidth, pdfLineHeight, "Status", "1", 1, "L", true, 0, "")
}
