package employee

import (
	"context"
)

// EmployeeService defines read access to imported employees
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
}
