// Package kv is the persistent key/value substrate the repositories are built
// on: a synchronous, quota-bounded, string-keyed byte store holding one
// serialized collection per key.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// DefaultQuota mirrors the per-origin capacity of browser local storage.
const DefaultQuota = 5 << 20

var (
	// ErrNotFound is returned by a Backend for a key that has never been set.
	ErrNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned when a write would push usage past the quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrWriteFailed matches every *WriteError.
	ErrWriteFailed = errors.New("storage write failed")
)

// Backend is the raw byte store behind a Substrate.
//
// Set either replaces the value completely or fails without touching the
// stored value. Usage counts len(key)+len(value) over all entries.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Usage(ctx context.Context) (int64, error)
	Quota() int64
}

// WriteError reports a failed substrate write. It unwraps to the cause
// (ErrQuotaExceeded, an encoding error or a backend error) and matches
// ErrWriteFailed.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWriteFailed }

// entrySize is the number of bytes an entry counts against the quota.
func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}
