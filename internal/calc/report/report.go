// Package report renders a damage evaluation as a PDF document.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"

	"Durability/internal/calc/damage"
	"Durability/internal/calc/woehler"
	"Durability/internal/plot"
)

const chartImage = "chart"

// Document is everything printed into one report.
type Document struct {
	Title    string
	Project  string
	Author   string
	Notes    string
	Date     time.Time
	Material string
	Spectrum damage.Spectrum
	Methods  map[string]woehler.Curve
	Selected []string
	Result   damage.Result
	Chart    *plot.Figure
}

func g(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, c := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// A4 width less the default 10mm margins.
const printableWidth = 190

// damageWidths sizes the spectrum columns and shares the rest of the page
// between n method columns, at most 38mm each.
func damageWidths(n int) []float64 {
	widths := []float64{16, 26, 26}
	if n == 0 {
		return widths
	}
	w := math.Min(38, (printableWidth-16-26-26)/float64(n))
	for range n {
		widths = append(widths, w)
	}
	return widths
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
}

// Write renders doc as PDF to w.
func Write(w io.Writer, doc Document) error {
	if doc.Title == "" {
		doc.Title = "Damage Report"
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", doc.Date.Format("2006-01-02")))
	pdf.Ln(6)
	if doc.Material != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Material: %s", doc.Material))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	heading(pdf, "S-N curves")
	var curves [][]string
	for _, m := range doc.Selected {
		c := doc.Methods[m]
		k2 := "-"
		if c.K2 != nil {
			k2 = g(*c.K2)
		}
		curves = append(curves, []string{m, g(c.K1), k2, g(c.ND), g(c.SD), g(c.TN), g(c.TS)})
	}
	table(pdf, []float64{42, 20, 20, 26, 22, 20, 20},
		[]string{"method", "k_1", "k_2", "ND", "SD", "TN", "TS"}, curves)

	heading(pdf, "Load spectrum and damage")
	header := []string{"level", "amplitude", "cycles"}
	header = append(header, doc.Selected...)
	widths := damageWidths(len(doc.Selected))
	var levels [][]string
	for i, l := range doc.Spectrum {
		row := []string{strconv.Itoa(i + 1), g(l.Amplitude), g(l.Cycles)}
		for _, m := range doc.Selected {
			v := ""
			if per := doc.Result[m].PerLevel; i < len(per) {
				v = fmt.Sprintf("%.3e", per[i])
			}
			row = append(row, v)
		}
		levels = append(levels, row)
	}
	total := []string{"total", "", ""}
	for _, m := range doc.Selected {
		total = append(total, fmt.Sprintf("%.3e", doc.Result[m].Total))
	}
	table(pdf, widths, header, append(levels, total))

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range doc.Selected {
		pdf.Cell(0, 6, damage.TotalLine(m, doc.Result[m].Total))
		pdf.Ln(6)
	}
	if doc.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, doc.Notes, "", "L", false)
	}

	if doc.Chart != nil {
		var img bytes.Buffer
		if err := doc.Chart.Render(&img, plot.FormatPNG); err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		pdf.AddPage()
		opt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(chartImage, opt, &img)
		pdf.ImageOptions(chartImage, 10, 20, 190, 0, false, opt, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
