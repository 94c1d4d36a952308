// Package export turns already loaded table rows into downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Table is the export input: a title, the column table and rows keyed by Column.Key.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
}

func (t Table) headers() []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = col.Label
	}
	return out
}

func (t Table) record(row map[string]string) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = row[col.Key]
	}
	return out
}

func CSV(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, errors.New("no columns to export")
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(t.headers()); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}
	for _, row := range t.Rows {
		if err := writer.Write(t.record(row)); err != nil {
			return nil, errors.Wrap(err, "write csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}

// PDF renders a single striped table under the title. Any failure, including
// a panic inside the renderer, yields an error and no bytes.
func PDF(t Table) (out []byte, err error) {
	if len(t.Columns) == 0 {
		return nil, errors.New("no columns to export")
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Errorf("render pdf: %v", r)
		}
	}()

	orientation := "P"
	if len(t.Columns) > 5 {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Columns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(41, 65, 122)
	pdf.SetTextColor(255, 255, 255)
	for _, label := range t.headers() {
		pdf.CellFormat(colW, 8, tr(fit(pdf, label, colW)), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range t.Rows {
		if i%2 == 0 {
			pdf.SetFillColor(240, 243, 248)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for _, cell := range t.record(row) {
			pdf.CellFormat(colW, 7, tr(fit(pdf, cell, colW)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "render pdf")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}
	return buf.Bytes(), nil
}

// fit shortens text so it stays inside one cell.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Template builds a single-sheet workbook with a bold header row and an
// optional sample row, used as an upload template.
func Template(sheet string, headers, sample []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "header cell")
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "set header")
		}
	}
	for i, value := range sample {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, errors.Wrap(err, "sample cell")
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, errors.Wrap(err, "set sample")
		}
	}
	if len(headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, errors.Wrap(err, "header style")
		}
		last, _ := excelize.ColumnNumberToName(len(headers))
		if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", last), style); err != nil {
			return nil, errors.Wrap(err, "apply header style")
		}
		if err := f.SetColWidth(sheet, "A", last, 20); err != nil {
			return nil, errors.Wrap(err, "column width")
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}
