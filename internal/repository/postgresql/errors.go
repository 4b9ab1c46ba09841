package postgresql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

const (
	constraintEmployeesPkey     = "employees_pkey"
	constraintEmployeesEmailKey = "employees_email_id_key"
	constraintEmployeesPANKey   = "employees_pan_number_key"
)

// classifyError maps driver errors onto employee errors. Unique violations
// become the matching duplicate error, other server-side errors are returned
// as is, and everything else (connection, network, context) is reported as
// employee.ErrStorageUnavailable.
func classifyError(err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case constraintEmployeesPkey:
				return fmt.Errorf("%w: %s", employee.ErrEmployeeIDExists, pgErr.Detail)
			case constraintEmployeesEmailKey:
				return fmt.Errorf("%w: %s", employee.ErrEmailExists, pgErr.Detail)
			case constraintEmployeesPANKey:
				return fmt.Errorf("%w: %s", employee.ErrPANExists, pgErr.Detail)
			}
			return err
		}
		// Class 08 is connection exception, 57P covers server shutdown.
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P") {
			return fmt.Errorf("%w: %v", employee.ErrStorageUnavailable, err)
		}
		return err
	}

	return fmt.Errorf("%w: %v", employee.ErrStorageUnavailable, err)
}
