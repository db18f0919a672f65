package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var _ Backend = (*SQLiteBackend)(nil)

// SQLiteBackend stores entries in the entries table created by db.Open.
type SQLiteBackend struct {
	db    *sql.DB
	quota int64
}

// NewSQLiteBackend wraps an open database. A quota of 0 disables the limit.
func NewSQLiteBackend(db *sql.DB, quota int64) *SQLiteBackend {
	return &SQLiteBackend{db: db, quota: quota}
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT value FROM entries WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, nil
}

// Set checks the quota and upserts in one transaction, so a rejected write
// leaves the previous value in place.
func (b *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if b.quota > 0 {
		var others int64
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(length(CAST(key AS BLOB)) + COALESCE(length(value), 0)), 0)
			 FROM entries WHERE key <> ?`, key,
		).Scan(&others)
		if err != nil {
			return fmt.Errorf("measuring usage: %w", err)
		}
		if others+entrySize(key, value) > b.quota {
			return ErrQuotaExceeded
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) Keys(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT key FROM entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (b *SQLiteBackend) Usage(ctx context.Context) (int64, error) {
	var used int64
	err := b.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(length(CAST(key AS BLOB)) + COALESCE(length(value), 0)), 0) FROM entries`,
	).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("measuring usage: %w", err)
	}
	return used, nil
}

func (b *SQLiteBackend) Quota() int64 { return b.quota }
