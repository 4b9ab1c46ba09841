package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	employee_id, employee_name, date_of_joining, date_of_birth, department,
	reporting_authority_id, mobile_number, email_id, pan_number,
	fixed_salary, bonus_salary, total_salary, designation, created_at
`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.DateOfJoining, &emp.DateOfBirth, &emp.Department,
		&emp.ReportingAuthorityID, &emp.MobileNumber, &emp.Email, &emp.PAN,
		&emp.FixedSalary, &emp.BonusSalary, &emp.TotalSalary, &emp.Designation, &emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, classifyError(err))
	}

	return emp, nil
}

// ExistsByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByID(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee with id %s: %w", id, classifyError(err))
	}

	return exists, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			employee_id, employee_name, date_of_joining, date_of_birth, department,
			reporting_authority_id, mobile_number, email_id, pan_number,
			fixed_salary, bonus_salary, total_salary, designation
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13
		)
		RETURNING created_at
	`

	created := newEmployee
	err := q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.DateOfJoining, newEmployee.DateOfBirth, string(newEmployee.Department),
		newEmployee.ReportingAuthorityID, newEmployee.MobileNumber, newEmployee.Email, newEmployee.PAN,
		newEmployee.FixedSalary, newEmployee.BonusSalary, newEmployee.TotalSalary, newEmployee.Designation,
	).Scan(&created.CreatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee %s: %w", newEmployee.ID, classifyError(err))
	}

	return created, nil
}
