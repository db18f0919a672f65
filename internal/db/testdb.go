package db

import (
	"context"
	"database/sql"
	"testing"
)

// NewTestDB returns an empty in-memory database, closed when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	database, err := Open(context.Background(), Memory)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
