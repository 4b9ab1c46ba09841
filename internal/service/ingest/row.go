package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/cmlabs-hris/hris-employee-import/internal/domain/ingest"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/validator"
)

// RowValidator turns a raw spreadsheet row into an employee record. In
// fail-fast mode it stops at the first violated rule; in collect-all mode it
// reports every violated rule of the row.
type RowValidator struct {
	mode ingest.ValidationMode
}

func NewRowValidator(mode ingest.ValidationMode) *RowValidator {
	if !mode.IsValid() {
		mode = ingest.ValidationModeFailFast
	}
	return &RowValidator{mode: mode}
}

func (v *RowValidator) Mode() ingest.ValidationMode {
	return v.mode
}

// Validate checks the row against every field rule in a fixed order. On
// failure the returned error is a validator.ValidationErrors.
func (v *RowValidator) Validate(row ingest.RawRow, now time.Time) (employee.Employee, error) {
	var (
		emp  employee.Employee
		errs validator.ValidationErrors
	)

	checks := []func() error{
		func() error {
			emp.ID = strings.TrimSpace(row.Get(ingest.ColumnEmployeeID))
			return ValidateEmployeeID(emp.ID)
		},
		func() error {
			emp.Name = strings.TrimSpace(row.Get(ingest.ColumnEmployeeName))
			return ValidateEmployeeName(emp.Name)
		},
		func() (err error) {
			emp.DateOfJoining, err = ValidateDateOfJoining(row.Get(ingest.ColumnDateOfJoining), now)
			return err
		},
		func() (err error) {
			emp.DateOfBirth, err = ValidateDateOfBirth(row.Get(ingest.ColumnDateOfBirth), now)
			return err
		},
		func() (err error) {
			emp.Department, err = ValidateDepartment(row.Get(ingest.ColumnDepartment))
			return err
		},
		func() (err error) {
			emp.MobileNumber, err = ValidateMobileNumber(row.Get(ingest.ColumnMobileNumber))
			return err
		},
		func() error {
			emp.Email = strings.TrimSpace(row.Get(ingest.ColumnEmailID))
			return ValidateEmail(emp.Email)
		},
		func() error {
			emp.PAN = strings.TrimSpace(row.Get(ingest.ColumnPANNumber))
			return ValidatePAN(emp.PAN)
		},
		func() error {
			salary, err := ValidateSalary(
				row.Get(ingest.ColumnFixedSalary),
				row.Get(ingest.ColumnBonusSalary),
				row.Get(ingest.ColumnTotalSalary),
			)
			emp.FixedSalary, emp.BonusSalary, emp.TotalSalary = salary.Fixed, salary.Bonus, salary.Total
			return err
		},
	}

	for _, check := range checks {
		err := check()
		if err == nil {
			continue
		}

		var fe validator.ValidationError
		if !errors.As(err, &fe) {
			fe = validator.ValidationError{Message: err.Error()}
		}
		errs = append(errs, fe)

		if v.mode == ingest.ValidationModeFailFast {
			break
		}
	}

	if len(errs) > 0 {
		return employee.Employee{}, errs
	}

	emp.ReportingAuthorityID = optional(row.Get(ingest.ColumnReportingAuthorityID))
	emp.Designation = optional(row.Get(ingest.ColumnDesignation))
	return emp, nil
}

// Reason flattens a Validate error into the per-row message text.
func Reason(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return strings.Join(errs.Messages(), "; ")
	}
	return err.Error()
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
