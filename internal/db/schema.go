package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds one row per substrate key. Values are opaque to SQLite; the
// collections stored under rewear-* keys are JSON arrays.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
    key        TEXT PRIMARY KEY,
    value      BLOB,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func ensureSchema(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
