// Package dbtest provides throwaway migrated SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament-api/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// DSN returns a file-backed SQLite DSN inside the test's temp dir.
func DSN(t testing.TB) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "padel.db")
}

// New creates a fresh SQLite database, applies all migrations and closes it when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := DSN(t)
	require.NoError(t, db.MigrateUp(db.DriverSQLite, dsn), "failed to apply migrations")

	conn, err := db.Connect(db.DriverSQLite, dsn, 5*time.Second)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}
