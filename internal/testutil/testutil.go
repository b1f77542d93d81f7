// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/db"
	"github.com/vytor/chessinsight/internal/logger"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is capped at one connection so every query sees the same memory
// database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { MustClose(t, sqlDB) })

	require.NoError(t, db.Migrate(context.Background(), sqlDB, logger.Discard()))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

