package payout

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"newsdesk/internal/model"
)

var csvHeader = []string{"Invoice", "Date", "Rate", "Articles", "Total Payout"}

const (
	pdfMarginX     = 20.0
	pdfTitleY      = 20.0
	pdfFirstBlockY = 30.0
	pdfLineHeight  = 10.0
	pdfBlockHeight = 50.0
	pdfPageBottom  = 280.0
)

func (l *Ledger) ExportCSV(w io.Writer) error {
	return WriteCSV(w, l.History())
}

func (l *Ledger) ExportPDF(w io.Writer) error {
	return WritePDF(w, l.History())
}

func WriteCSV(w io.Writer, records []model.PayoutRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Date,
			FormatRate(r.Rate),
			strconv.Itoa(r.Articles),
			"$" + r.TotalPayout,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePDF lays out one fixed-height block per record under a title,
// starting a new page when a block would run off the bottom.
func WritePDF(w io.Writer, records []model.PayoutRecord) error {
	return buildPDF(records).Output(w)
}

func buildPDF(records []model.PayoutRecord) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payout History", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(pdfMarginX, pdfTitleY, "Payout History")

	y := pdfFirstBlockY
	for _, r := range records {
		if y+4*pdfLineHeight > pdfPageBottom {
			pdf.AddPage()
			y = pdfTitleY
		}
		lines := []string{
			fmt.Sprintf("Invoice: %s", r.ID),
			fmt.Sprintf("Date: %s", r.Date),
			fmt.Sprintf("Rate: $%s", FormatRate(r.Rate)),
			fmt.Sprintf("Articles: %d", r.Articles),
			fmt.Sprintf("Total Payout: $%s", r.TotalPayout),
		}
		for i, line := range lines {
			pdf.Text(pdfMarginX, y+float64(i)*pdfLineHeight, line)
		}
		y += pdfBlockHeight
	}

	return pdf
}
