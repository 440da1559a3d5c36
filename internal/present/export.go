package present

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Export renders v in the given format.
func Export(v View, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatXLSX:
		return BuildXLSX(v)
	case FormatPDF:
		return BuildPDF(v)
	}
	return nil, fmt.Errorf("unsupported export format: %q", f)
}

// WriteCSV writes the series then the totals, one row each:
//
//	section,name,value
//	series,2026,60795
//	total,Invested Amount,600000
func WriteCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "name", "value"}); err != nil {
		return err
	}
	for i, label := range v.Labels {
		if err := cw.Write([]string{"series", label, fmtAmount(v.Values[i])}); err != nil {
			return err
		}
	}
	for _, t := range v.Totals {
		if err := cw.Write([]string{"total", t.Name, fmtAmount(t.Amount)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// BuildXLSX renders a summary sheet and a series sheet.
func BuildXLSX(v View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	seriesSheet := "series"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(seriesSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", v.Title)
	for i, t := range v.Totals {
		row := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), t.Name)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.Amount)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), t.Display)
	}

	_ = f.SetCellValue(seriesSheet, "A1", "Year")
	_ = f.SetCellValue(seriesSheet, "B1", v.SeriesLabel)
	for i, label := range v.Labels {
		row := i + 2
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("A%d", row), label)
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("B%d", row), v.Values[i])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfText swaps the rupee sign for "Rs. "; the core PDF fonts are Latin-1 only.
func pdfText(s string) string {
	return strings.ReplaceAll(s, currencySymbol, "Rs. ")
}

// BuildPDF renders a one-page report: totals, then the yearly table.
func BuildPDF(v View) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, pdfText(v.Title))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(8)
	for _, t := range v.Totals {
		pdf.Cell(0, 6, pdfText(fmt.Sprintf("%s: %s", t.Name, t.Display)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Year", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, v.SeriesLabel, "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i, label := range v.Labels {
		pdf.CellFormat(40, 6, label, "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, pdfText(FormatCurrency(v.Values[i])), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
