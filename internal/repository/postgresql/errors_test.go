package postgresql

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-employee-import/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantIs     error
		passesThru bool
	}{
		{
			name:   "duplicate id",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintEmployeesPkey},
			wantIs: employee.ErrEmployeeIDExists,
		},
		{
			name:   "duplicate email",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintEmployeesEmailKey},
			wantIs: employee.ErrEmailExists,
		},
		{
			name:   "duplicate pan",
			err:    &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintEmployeesPANKey},
			wantIs: employee.ErrPANExists,
		},
		{
			name:       "unknown unique constraint",
			err:        &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "other_key"},
			passesThru: true,
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: "23514"},
			passesThru: true,
		},
		{
			name:   "admin shutdown",
			err:    &pgconn.PgError{Code: "57P01"},
			wantIs: employee.ErrStorageUnavailable,
		},
		{
			name:   "connection failure",
			err:    &pgconn.PgError{Code: "08006"},
			wantIs: employee.ErrStorageUnavailable,
		},
		{
			name:   "network error",
			err:    errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantIs: employee.ErrStorageUnavailable,
		},
		{
			name:   "canceled context",
			err:    context.Canceled,
			wantIs: employee.ErrStorageUnavailable,
		},
		{
			name:       "no rows",
			err:        pgx.ErrNoRows,
			passesThru: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if tt.passesThru {
				assert.Equal(t, tt.err, got)
				assert.False(t, errors.Is(got, employee.ErrStorageUnavailable))
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	assert.NoError(t, classifyError(nil))
}
