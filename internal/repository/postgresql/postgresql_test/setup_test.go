package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/database"
	"github.com/cmlabs-hris/hris-employee-import/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties the employees table. The test is skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	_, err = db.Exec(ctx, postgresql.Schema)
	require.NoError(t, err)

	truncate := func() {
		_, err := db.Exec(ctx, "TRUNCATE TABLE employees")
		require.NoError(t, err)
	}
	truncate()
	t.Cleanup(truncate)

	return db
}
