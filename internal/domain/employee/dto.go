package employee

import "time"

type EmployeeResponse struct {
	ID                   string    `json:"employee_id"`
	Name                 string    `json:"employee_name"`
	DateOfJoining        string    `json:"date_of_joining"`
	DateOfBirth          string    `json:"date_of_birth"`
	Department           string    `json:"department"`
	ReportingAuthorityID *string   `json:"reporting_authority_id,omitempty"`
	MobileNumber         string    `json:"mobile_number"`
	Email                string    `json:"email_id"`
	PAN                  string    `json:"pan_number"`
	FixedSalary          string    `json:"fixed_salary"`
	BonusSalary          string    `json:"bonus_salary"`
	TotalSalary          string    `json:"total_salary"`
	Designation          *string   `json:"designation,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewEmployeeResponse renders dates as YYYY-MM-DD and salaries with two decimals.
func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		DateOfJoining:        e.DateOfJoining.Format("2006-01-02"),
		DateOfBirth:          e.DateOfBirth.Format("2006-01-02"),
		Department:           string(e.Department),
		ReportingAuthorityID: e.ReportingAuthorityID,
		MobileNumber:         e.MobileNumber,
		Email:                e.Email,
		PAN:                  e.PAN,
		FixedSalary:          e.FixedSalary.StringFixed(2),
		BonusSalary:          e.BonusSalary.StringFixed(2),
		TotalSalary:          e.TotalSalary.StringFixed(2),
		Designation:          e.Designation,
		CreatedAt:            e.CreatedAt,
	}
}
