package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"employees.xlsx", true},
		{"employees.xls", true},
		{"EMPLOYEES.XLSX", true},
		{"archive.2024.Xls", true},
		{"employees.csv", false},
		{"employees.xlsm", false},
		{"employees", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedExtension(tt.filename))
		})
	}
}

func TestRead_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{" Employee ID ", "Employee Name", "Mobile Number"},
		{"E001", "  Asha Rao ", 9876543210},
		nil,
		{"", "   ", ""},
		{"E002", "Ravi Kumar"},
	})

	sheet, err := Read("employees.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, []string{"Employee ID", "Employee Name", "Mobile Number"}, sheet.Columns)
	require.Len(t, sheet.Rows, 2)

	first := sheet.Rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "E001", first.Get("Employee ID"))
	assert.Equal(t, "Asha Rao", first.Get("Employee Name"))
	assert.Equal(t, "9876543210", first.Get("Mobile Number"))

	second := sheet.Rows[1]
	assert.Equal(t, 5, second.Line)
	assert.Equal(t, "E002", second.Get("Employee ID"))
	assert.Equal(t, "", second.Get("Mobile Number"))
	assert.Equal(t, "", second.Get("Unknown Column"))
}

func TestRead_HeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Employee ID", "Employee Name"},
	})

	sheet, err := Read("employees.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee ID", "Employee Name"}, sheet.Columns)
	assert.Empty(t, sheet.Rows)
}

func TestRead_DuplicateHeaderKeepsFirst(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Employee ID", "Employee ID", "Department"},
		{"E001", "E999", "IT"},
	})

	sheet, err := Read("employees.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee ID", "Department"}, sheet.Columns)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "E001", sheet.Rows[0].Get("Employee ID"))
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{"unsupported extension", "employees.csv", []byte("a,b\n1,2\n"), ErrUnsupportedFormat},
		{"corrupt xlsx", "employees.xlsx", []byte("this is not a zip archive"), ErrCorrupt},
		{"corrupt xls", "employees.xls", []byte("this is not a compound document"), ErrCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Read(tt.filename, bytes.NewReader(tt.data))
			assert.Nil(t, sheet)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	columns := []string{"Employee ID", "Employee Name", "Date of Joining"}

	data, err := WriteTemplate("Employees", columns)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	sheet, err := Read("template.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Employees", sheet.Name)
	assert.Equal(t, columns, sheet.Columns)
	assert.Empty(t, sheet.Rows)
}
