// Package tabular reads uploaded spreadsheet exports into position-addressed
// rows. The gate plan, FIDS and turnaround sources arrive as .xlsx or .csv
// files with noisy, often merged header rows, so rows are exposed as plain
// string slices and callers address cells by column index.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row as raw cell text, addressed by column index.
type Row []string

// Cell returns the cell at index i, or the empty string when the row is
// shorter than that. Exports routinely drop trailing empty cells, so a
// short row is not an error.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// ReadOptions selects which part of a workbook to read.
type ReadOptions struct {
	// Sheet names the worksheet to read. Empty means the first sheet,
	// matching how the exports are produced (single-sheet workbooks).
	Sheet string

	// SkipRows drops this many leading rows. The exports carry one or two
	// rows of merged header noise above the data.
	SkipRows int
}

// ErrEmptySource reports a file that decoded but produced no data rows.
var ErrEmptySource = errors.New("tabular: source contains no data rows")

// Read decodes the named upload into rows. The decoder is chosen by file
// extension (.xlsx or .csv); any decode failure is returned as a single
// error with no partial rows.
func Read(name string, r io.Reader, opts ReadOptions) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, opts)
	case ".csv":
		return ReadCSV(r, opts)
	default:
		return nil, fmt.Errorf("tabular: unsupported file type %q", filepath.Ext(name))
	}
}

// ReadXLSX reads one worksheet of an Excel workbook.
func ReadXLSX(r io.Reader, opts ReadOptions) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("tabular: open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySource
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("tabular: read sheet %q: %w", sheet, err)
	}

	return skipRows(toRows(raw), opts.SkipRows)
}

// ReadCSV reads a comma-separated export. Ragged rows are accepted; the
// exports pad inconsistently.
func ReadCSV(r io.Reader, opts ReadOptions) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	raw, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: read csv: %w", err)
	}

	return skipRows(toRows(raw), opts.SkipRows)
}

func toRows(raw [][]string) []Row {
	rows := make([]Row, 0, len(raw))
	for _, rec := range raw {
		rows = append(rows, Row(rec))
	}
	return rows
}

func skipRows(rows []Row, skip int) ([]Row, error) {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return nil, ErrEmptySource
	}
	rows = rows[skip:]
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}
	return rows, nil
}
