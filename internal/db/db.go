// Package db opens the SQLite file that backs the key/value substrate.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Memory opens a private in-memory database.
const Memory = ":memory:"

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
}

// Open opens or creates the database at path and makes sure the entries
// table exists. The pool holds one connection: writes are serialized anyway,
// and each connection to Memory would see its own empty database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := prepare(ctx, database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func prepare(ctx context.Context, database *sql.DB) error {
	for _, p := range pragmas {
		if _, err := database.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	return ensureSchema(ctx, database)
}
