package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Field is a labelled value printed as a single report line.
type Field struct {
	Label string
	Value string
}

// Section groups report content under a heading. Table is optional.
type Section struct {
	Heading   string
	Fields    []Field
	Paragraph string
	Table     *Table
}

// Report describes a single-document PDF.
type Report struct {
	Title    string
	Subtitle string
	Sections []Section
}

// PDFExporter renders reports with gofpdf core fonts.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF document.
func (e *PDFExporter) Render(report Report) ([]byte, error) {
	if report.Title == "" {
		return nil, fmt.Errorf("pdf report requires a title")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	// Core fonts are cp1252; translate so accented physician names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "L", false, 0, "")
	if report.Subtitle != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 6, tr(report.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range report.Sections {
		if section.Heading != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, tr(section.Heading), "B", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
		for _, field := range section.Fields {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(40, 6, tr(field.Label), "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, tr(field.Value), "", "L", false)
		}
		if section.Paragraph != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, tr(section.Paragraph), "", "L", false)
		}
		if section.Table != nil && len(section.Table.Headers) > 0 {
			renderTable(pdf, tr, *section.Table)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderTable(pdf *gofpdf.Fpdf, tr func(string) string, table Table) {
	colWidth := 180.0 / float64(len(table.Headers))
	pdf.SetFont("Arial", "B", 10)
	for _, header := range table.Headers {
		pdf.CellFormat(colWidth, 7, tr(header), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		for i := range table.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
