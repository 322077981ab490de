package excel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadRows loads an xlsx workbook and returns the cell rows of its first
// sheet. Rows are returned as raw strings; interpreting cells is the caller's
// concern.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// Writer builds a single-sheet xlsx workbook row by row.
type Writer struct {
	file  *excelize.File
	sheet string
	row   int
	err   error
}

func NewWriter(sheet string) *Writer {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != sheet {
		f.SetSheetName(defaultSheet, sheet)
	}
	return &Writer{file: f, sheet: sheet}
}

// AppendRow writes values into the next row, starting at column A.
func (w *Writer) AppendRow(values ...interface{}) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.file.SetSheetRow(w.sheet, cell, &values)
}

// SetColumnWidths sets widths for columns A..A+len(widths)-1.
func (w *Writer) SetColumnWidths(widths ...float64) {
	if w.err != nil {
		return
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		if err := w.file.SetColWidth(w.sheet, col, col, width); err != nil {
			w.err = err
			return
		}
	}
}

// Bytes finalizes the workbook and returns its serialized form.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var buf bytes.Buffer
	if err := w.file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
