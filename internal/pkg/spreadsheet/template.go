package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteTemplate builds an .xlsx workbook with a single bold header row.
func WriteTemplate(sheetName string, columns []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	if len(columns) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(columns))
		if err != nil {
			return nil, fmt.Errorf("resolve last column: %w", err)
		}
		if err := f.SetColWidth(sheetName, "A", lastCol, 24); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
