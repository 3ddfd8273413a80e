package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

var pdfWidths = []float64{55, 38, 70, 28, 40, 15, 25}

func writePDF(w io.Writer, rows []Row) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Data Peserta Kegiatan", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Data Peserta Kegiatan", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %d peserta", len(rows)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range Headers {
			pdf.CellFormat(pdfWidths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, r := range rows {
		if pdf.GetY()+6 > pageHeight-bottom-10 {
			pdf.AddPage()
			header()
		}
		for i, v := range r.values() {
			pdf.CellFormat(pdfWidths[i], 6, truncate(tr(v), pdfWidths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// truncate trims text that would overflow a cell of width mm at 8pt.
func truncate(s string, width float64) string {
	max := int(width / 1.6)
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "."
}
