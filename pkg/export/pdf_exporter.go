package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

var pdfColumns = []struct {
	header string
	width  float64
	value  func(Row) string
}{
	{"Day", 20, func(r Row) string { return r.Day }},
	{"#", 10, func(r Row) string { return strconv.Itoa(r.Period + 1) }},
	{"Time", 30, func(r Row) string { return r.StartTime + "-" + r.EndTime }},
	{"Subject", 60, func(r Row) string { return labelled(r) }},
	{"Faculty", 50, func(r Row) string { return r.Faculty }},
	{"Class", 40, func(r Row) string { return r.Class }},
	{"Room", 35, func(r Row) string { return r.Room }},
}

// PDFExporter renders a timetable sheet into a printable landscape table.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the sheet title and one line per period.
func (e *PDFExporter) Render(sheet Sheet) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if sheet.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, sheet.Title, "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range sheet.Rows {
		fill := row.Lab
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.value(row), "1", 0, "", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func labelled(r Row) string {
	label := r.Subject
	if r.Code != "" {
		label = fmt.Sprintf("%s (%s)", r.Subject, r.Code)
	}
	if r.Lab {
		label += " [lab]"
	}
	return label
}
