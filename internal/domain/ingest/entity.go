package ingest

import (
	"fmt"
	"time"
)

// Column headers of the import spreadsheet, matched exactly after trimming.
const (
	ColumnEmployeeID           = "Employee ID"
	ColumnEmployeeName         = "Employee Name"
	ColumnDateOfJoining        = "Date of Joining"
	ColumnDateOfBirth          = "Date of Birth"
	ColumnDepartment           = "Department"
	ColumnReportingAuthorityID = "Reporting Authority Employee ID"
	ColumnMobileNumber         = "Mobile Number"
	ColumnEmailID              = "Email ID"
	ColumnPANNumber            = "PAN Number"
	ColumnFixedSalary          = "Fixed Salary"
	ColumnBonusSalary          = "Bonus Salary"
	ColumnTotalSalary          = "Total Salary"
	ColumnDesignation          = "Designation"
)

// RequiredColumns returns the header names every import sheet must carry, in
// template order.
func RequiredColumns() []string {
	return []string{
		ColumnEmployeeID,
		ColumnEmployeeName,
		ColumnDateOfJoining,
		ColumnDateOfBirth,
		ColumnDepartment,
		ColumnReportingAuthorityID,
		ColumnMobileNumber,
		ColumnEmailID,
		ColumnPANNumber,
		ColumnFixedSalary,
		ColumnBonusSalary,
		ColumnTotalSalary,
		ColumnDesignation,
	}
}

type ValidationMode string

const (
	// ValidationModeFailFast stops at the first violated rule of a row.
	ValidationModeFailFast ValidationMode = "fail_fast"
	// ValidationModeCollectAll reports every violated rule of a row.
	ValidationModeCollectAll ValidationMode = "collect_all"
)

func (m ValidationMode) IsValid() bool {
	return m == ValidationModeFailFast || m == ValidationModeCollectAll
}

// RawRow is one spreadsheet data row. Line is the row number as the user sees
// it in the spreadsheet (the header is line 1).
type RawRow struct {
	Line   int
	Values map[string]string
}

func (r RawRow) Get(column string) string {
	return r.Values[column]
}

// Batch is the full content of one upload.
type Batch struct {
	ID      string
	Actor   string
	Columns []string
	Rows    []RawRow
}

// RowFailure records why a row was rejected.
type RowFailure struct {
	Line   int
	Reason string
}

func (f RowFailure) Message() string {
	return fmt.Sprintf("Error processing row %d: %s", f.Line, f.Reason)
}

// BatchResult aggregates the outcome of one batch. Errors holds one message per
// failed row, in input order.
type BatchResult struct {
	Successful int
	Failed     int
	Errors     []string
}

func (r BatchResult) Total() int {
	return r.Successful + r.Failed
}

// AuditEntry is one upload attempt as written to the audit log.
type AuditEntry struct {
	Timestamp   time.Time
	Actor       string
	Result      BatchResult
	AbortReason string
}
