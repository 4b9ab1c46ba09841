package ingest

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Rule messages shown to the uploader, one per field rule.
const (
	MsgEmployeeID    = "Employee ID must be unique and alphanumeric."
	MsgEmployeeName  = "Employee Name must contain only alphabetic characters and be non-empty."
	MsgDateOfJoining = "Date of Joining must be a valid date in the past."
	MsgDateOfBirth   = "Date of Birth must be a valid date with the employee at least 18 years old."
	MsgDepartment    = "Department must be a valid department name from a predefined list."
	MsgMobileNumber  = "Mobile Number must be a valid 10-digit number without any special characters or spaces."
	MsgEmailID       = "Email ID must be a valid email format."
	MsgPANNumber     = "PAN Number must be a valid PAN format."
	MsgSalary        = "Fixed Salary and Bonus Salary must be non-negative, and Total Salary must be the sum of Fixed Salary and Bonus Salary."
	MsgSalaryScale   = "Fixed Salary, Bonus Salary and Total Salary must have at most 2 decimal places."
)

const MinimumAgeYears = 18

// SalaryScale is the number of fractional digits a stored salary keeps.
const SalaryScale = 2

func fieldError(column, message string) error {
	return validator.ValidationError{Field: column, Message: message}
}

func ValidateEmployeeID(value string) error {
	if !validator.IsAlphanumeric(strings.TrimSpace(value)) {
		return fieldError(ingest.ColumnEmployeeID, MsgEmployeeID)
	}
	return nil
}

func ValidateEmployeeName(value string) error {
	value = strings.TrimSpace(value)
	if validator.IsEmpty(value) || !validator.IsValidName(value) {
		return fieldError(ingest.ColumnEmployeeName, MsgEmployeeName)
	}
	return nil
}

// parseLocalDate reads a date cell without an explicit offset as wall-clock
// time in now's location.
func parseLocalDate(value string, now time.Time) (time.Time, bool) {
	t, ok := validator.ParseDate(value)
	if !ok {
		return time.Time{}, false
	}
	if t.Location() != time.UTC {
		return t, true
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), now.Location()), true
}

// ValidateDateOfJoining requires a parseable date strictly before now.
func ValidateDateOfJoining(value string, now time.Time) (time.Time, error) {
	joined, ok := parseLocalDate(value, now)
	if !ok || !joined.Before(now) {
		return time.Time{}, fieldError(ingest.ColumnDateOfJoining, MsgDateOfJoining)
	}
	return joined, nil
}

// ValidateDateOfBirth requires the employee to have had their 18th birthday
// on or before now. Years are calendar years, not 365-day blocks.
func ValidateDateOfBirth(value string, now time.Time) (time.Time, error) {
	dob, ok := parseLocalDate(value, now)
	if !ok || dob.AddDate(MinimumAgeYears, 0, 0).After(now) {
		return time.Time{}, fieldError(ingest.ColumnDateOfBirth, MsgDateOfBirth)
	}
	return dob, nil
}

func ValidateDepartment(value string) (employee.Department, error) {
	dept := employee.Department(strings.TrimSpace(value))
	if !dept.IsValid() {
		return "", fieldError(ingest.ColumnDepartment, MsgDepartment)
	}
	return dept, nil
}

// ValidateMobileNumber accepts exactly ten digits. A numeric cell read back as
// "9876543210.0" is normalized first.
func ValidateMobileNumber(value string) (string, error) {
	value = trimIntegralFraction(strings.TrimSpace(value))
	if !validator.IsValidMobileNumber(value) {
		return "", fieldError(ingest.ColumnMobileNumber, MsgMobileNumber)
	}
	return value, nil
}

func ValidateEmail(value string) error {
	if !validator.IsValidEmail(strings.TrimSpace(value)) {
		return fieldError(ingest.ColumnEmailID, MsgEmailID)
	}
	return nil
}

func ValidatePAN(value string) error {
	if !validator.IsValidPAN(strings.TrimSpace(value)) {
		return fieldError(ingest.ColumnPANNumber, MsgPANNumber)
	}
	return nil
}

// Salary holds the three parsed salary cells.
type Salary struct {
	Fixed decimal.Decimal
	Bonus decimal.Decimal
	Total decimal.Decimal
}

// ValidateSalary parses the cells as exact decimals. Fixed and bonus must be
// non-negative and total must equal their sum exactly. Amounts may have at most
// SalaryScale fractional digits, the scale of the salary columns.
func ValidateSalary(fixed, bonus, total string) (Salary, error) {
	invalid := fieldError(ingest.ColumnTotalSalary, MsgSalary)

	f, err := decimal.NewFromString(strings.TrimSpace(fixed))
	if err != nil {
		return Salary{}, invalid
	}
	b, err := decimal.NewFromString(strings.TrimSpace(bonus))
	if err != nil {
		return Salary{}, invalid
	}
	t, err := decimal.NewFromString(strings.TrimSpace(total))
	if err != nil {
		return Salary{}, invalid
	}

	if f.IsNegative() || b.IsNegative() || !t.Equal(f.Add(b)) {
		return Salary{}, invalid
	}
	for _, d := range []decimal.Decimal{f, b, t} {
		if !d.Equal(d.Round(SalaryScale)) {
			return Salary{}, fieldError(ingest.ColumnTotalSalary, MsgSalaryScale)
		}
	}
	return Salary{Fixed: f, Bonus: b, Total: t}, nil
}

// trimIntegralFraction turns "123.0" or "123.00" into "123"; anything else is
// returned unchanged.
func trimIntegralFraction(value string) string {
	dot := strings.IndexByte(value, '.')
	if dot <= 0 {
		return value
	}
	if strings.Trim(value[dot+1:], "0") != "" {
		return value
	}
	if dot == len(value)-1 {
		return value
	}
	return value[:dot]
}
