package workorder

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	title        = "Fertilization work order"
	signatureBar = "_________________________"
)

var columns = []struct {
	name  string
	width float64
}{
	{"Sector", 45},
	{"Valve", 20},
	{"Product", 45},
	{"Liters to apply", 30},
	{"Actual liters", 40},
}

// WritePDF renders o on A4 with a blank column for the crew to fill in.
func WritePDF(w io.Writer, o Order) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 10, "Issue date: "+o.Issued.Format("02/01/2006"), "", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.name, "1", ln, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range o.Lines {
		pdf.CellFormat(columns[0].width, 10, tr(l.Sector), "1", 0, "", false, 0, "")
		pdf.CellFormat(columns[1].width, 10, tr(l.Valve), "1", 0, "", false, 0, "")
		pdf.CellFormat(columns[2].width, 10, tr(l.Product), "1", 0, "", false, 0, "")
		pdf.CellFormat(columns[3].width, 10, liters(l.Liters), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[4].width, 10, "", "1", 1, "", false, 0, "")
	}

	pdf.Ln(15)
	pdf.CellFormat(0, 10, "Observations:", "", 1, "", false, 0, "")
	pdf.MultiCell(0, 10, "", "1", "L", false)
	pdf.Ln(25)
	pdf.CellFormat(90, 10, signatureBar, "", 0, "C", false, 0, "")
	pdf.CellFormat(90, 10, signatureBar, "", 1, "C", false, 0, "")
	pdf.CellFormat(90, 5, "Farm manager signature", "", 0, "C", false, 0, "")
	pdf.CellFormat(90, 5, "Operator signature", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

func liters(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
