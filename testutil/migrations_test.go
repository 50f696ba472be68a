package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/migrations"
	"github.com/ustinerary/planner/testutil"
)

// TestMigrations applies every migration from a clean database, checks the
// key-value table, then rolls everything back.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// Another package's TestMain may already have migrated this database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err, "migrations.Up")
	assert.Contains(t, applied, int64(1))

	assert.Equal(t, []string{"key", "updated_at", "value"}, columns(t, db, "kv_entries"))

	// Re-running is a no-op.
	applied, err = migrations.Up(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assert.Empty(t, columns(t, db, "kv_entries"))
}

// columns lists the columns of table in the public schema, sorted by name.
func columns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	const q = `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY column_name`
	rows, err := db.QueryContext(context.Background(), q, table)
	require.NoError(t, err, "list columns of %q", table)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		out = append(out, name)
	}
	require.NoError(t, rows.Err())
	return out
}
