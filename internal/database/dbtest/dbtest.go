// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/realdaly/books-log-sub000/internal/database"
)

// Open returns a migrated database living in t.TempDir, closed on cleanup.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), &database.Config{
		Path: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// Exec runs raw fixture statements.
func Exec(t testing.TB, db *sqlx.DB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
}

// Count returns SELECT COUNT(*) for the given table expression.
func Count(t testing.TB, db *sqlx.DB, from string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+from, args...))
	return n
}
