// Package spreadsheet reads uploaded .xls/.xlsx workbooks into header-keyed rows
// and writes the import template.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrCorrupt           = errors.New("spreadsheet could not be read")
)

const (
	ExtXLS  = ".xls"
	ExtXLSX = ".xlsx"
)

// Row is one data row keyed by (trimmed) header name.
// Line is the 1-based row number as shown by spreadsheet software.
type Row struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed cell under column, or "" when absent.
func (r Row) Get(column string) string {
	return r.Values[column]
}

// Sheet is the first worksheet of a workbook.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

// AllowedExtension reports whether filename ends in .xls or .xlsx (case-insensitive).
func AllowedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtXLS, ExtXLSX:
		return true
	}
	return false
}

// Read parses the first worksheet of an .xls or .xlsx workbook. The format is
// chosen by the filename extension.
func Read(filename string, r io.ReadSeeker) (*Sheet, error) {
	var (
		name string
		grid [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtXLSX:
		name, grid, err = readXLSX(r)
	case ExtXLS:
		name, grid, err = readXLS(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	return fromGrid(name, grid), nil
}

func readXLSX(r io.Reader) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("%w: workbook has no worksheets", ErrCorrupt)
	}

	// Raw values keep numbers unformatted and dates as serial numbers.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return sheets[0], rows, nil
}

func readXLS(r io.ReadSeeker) (name string, grid [][]string, err error) {
	// The BIFF decoders panic on some malformed input.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrCorrupt, p)
		}
	}()

	// Values come from the raw records; the xls package renders dates as
	// year.month and formulas as a placeholder. It is used for shared strings.
	raw, err := scanBIFF(r)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return "", nil, fmt.Errorf("%w: workbook has no worksheets", ErrCorrupt)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return "", nil, fmt.Errorf("%w: workbook has no worksheets", ErrCorrupt)
	}

	grid = make([][]string, raw.maxRow+1)
	for pos, cell := range raw.cells {
		v := cell.value
		if cell.text {
			v = sheet.Row(pos.row).Col(pos.col)
		}
		row := grid[pos.row]
		if len(row) <= pos.col {
			row = append(row, make([]string, pos.col+1-len(row))...)
		}
		row[pos.col] = v
		grid[pos.row] = row
	}
	return sheet.Name, grid, nil
}

// fromGrid treats the first row as the header. Header names and cells are
// whitespace-trimmed; rows whose cells are all blank are dropped.
func fromGrid(name string, grid [][]string) *Sheet {
	sheet := &Sheet{Name: name}
	if len(grid) == 0 {
		return sheet
	}

	positions := make(map[string]int)
	for idx, raw := range grid[0] {
		col := strings.TrimSpace(raw)
		if col == "" {
			continue
		}
		if _, dup := positions[col]; dup {
			continue
		}
		positions[col] = idx
		sheet.Columns = append(sheet.Columns, col)
	}

	for i := 1; i < len(grid); i++ {
		cells := grid[i]
		values := make(map[string]string, len(positions))
		blank := true
		for col, idx := range positions {
			var v string
			if idx < len(cells) {
				v = strings.TrimSpace(cells[idx])
			}
			if v != "" {
				blank = false
			}
			values[col] = v
		}
		if blank {
			continue
		}
		sheet.Rows = append(sheet.Rows, Row{Line: i + 1, Values: values})
	}

	return sheet
}
