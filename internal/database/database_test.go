package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/plsync/internal/database"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := database.New("mysql", "")
	assert.ErrorContains(t, err, "unsupported")
}

func TestMigrate(t *testing.T) {
	db, err := database.New(database.DriverSQLite, ":memory:")
	require.NoError(t, err)

	defer db.Close()

	ctx := context.Background()

	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, database.Migrate(ctx, db), "second run must be a no-op")

	var locks int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM record_locks WHERE year = 2025 AND month = 1 AND data_type = 'budget'`,
	).Scan(&locks))
	assert.Equal(t, 1, locks)
}
