package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is one stored employee record. Records are created by spreadsheet
// import only.
type Employee struct {
	ID                   string
	Name                 string
	DateOfJoining        time.Time
	DateOfBirth          time.Time
	Department           Department
	ReportingAuthorityID *string
	MobileNumber         string
	Email                string
	PAN                  string
	FixedSalary          decimal.Decimal
	BonusSalary          decimal.Decimal
	TotalSalary          decimal.Decimal
	Designation          *string
	CreatedAt            time.Time
}

type Department string

const (
	DepartmentHR        Department = "HR"
	DepartmentIT        Department = "IT"
	DepartmentFinance   Department = "Finance"
	DepartmentMarketing Department = "Marketing"
)

// Departments lists the accepted department names in display order.
func Departments() []Department {
	return []Department{DepartmentHR, DepartmentIT, DepartmentFinance, DepartmentMarketing}
}

// IsValid is case-sensitive.
func (d Department) IsValid() bool {
	switch d {
	case DepartmentHR, DepartmentIT, DepartmentFinance, DepartmentMarketing:
		return true
	}
	return false
}
