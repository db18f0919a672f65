package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Substrate serializes whole collections to and from a Backend.
//
// Reads never fail: a missing key, a backend error or a malformed value all
// degrade to an empty collection. Writes report every failure as a
// *WriteError and never leave a partially written value behind.
type Substrate struct {
	backend Backend
	log     *slog.Logger
	metrics *Metrics
}

// Option configures a Substrate.
type Option func(*Substrate)

// WithLogger sets the logger used for read and write diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Substrate) { s.log = l }
}

// WithMetrics records reads, writes and usage on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Substrate) { s.metrics = m }
}

// New returns a Substrate over b.
func New(b Backend, opts ...Option) *Substrate {
	s := &Substrate{backend: b, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the collection stored under key.
func Read[T any](ctx context.Context, s *Substrate, key string) []T {
	data, ok := s.get(ctx, key, key)
	if !ok {
		return nil
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Warn("discarding malformed stored value", "key", key, "error", err)
		s.metrics.decodeError(key)
		return nil
	}
	return out
}

// Write replaces the collection stored under key.
func Write[T any](ctx context.Context, s *Substrate, key string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return s.fail(key, key, fmt.Errorf("encoding: %w", err))
	}
	return s.set(ctx, key, key, data)
}

// ReadBlob returns the raw value stored under key.
func (s *Substrate) ReadBlob(ctx context.Context, key string) ([]byte, bool) {
	return s.get(ctx, key, labelBlob)
}

// WriteBlob stores a raw value under key.
func (s *Substrate) WriteBlob(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, key, labelBlob, value)
}

// DeleteBlob removes key. Deleting a missing key is not an error.
func (s *Substrate) DeleteBlob(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return s.fail(key, labelBlob, err)
	}
	s.metrics.write(labelBlob, resultOK)
	s.refreshUsage(ctx)
	return nil
}

// Keys lists every key in the backend.
func (s *Substrate) Keys(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx)
}

// Usage reports the bytes in use and the backend quota (0 means unlimited).
func (s *Substrate) Usage(ctx context.Context) (used, quota int64, err error) {
	used, err = s.backend.Usage(ctx)
	if err != nil {
		return 0, 0, err
	}
	return used, s.backend.Quota(), nil
}

func (s *Substrate) get(ctx context.Context, key, label string) ([]byte, bool) {
	s.metrics.read(label)

	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("key not stored yet", "key", key)
		return nil, false
	}
	if err != nil {
		s.log.Error("reading from storage", "key", key, "error", err)
		return nil, false
	}
	return data, true
}

func (s *Substrate) set(ctx context.Context, key, label string, data []byte) error {
	if err := s.backend.Set(ctx, key, data); err != nil {
		return s.fail(key, label, err)
	}
	s.metrics.write(label, resultOK)
	s.refreshUsage(ctx)
	return nil
}

func (s *Substrate) fail(key, label string, err error) error {
	if errors.Is(err, ErrQuotaExceeded) {
		s.metrics.write(label, resultQuota)
		s.log.Warn("storage quota exceeded", "key", key)
	} else {
		s.metrics.write(label, resultError)
		s.log.Error("writing to storage", "key", key, "error", err)
	}
	return &WriteError{Key: key, Err: err}
}

func (s *Substrate) refreshUsage(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	used, err := s.backend.Usage(ctx)
	if err != nil {
		s.log.Debug("measuring usage", "error", err)
		return
	}
	s.metrics.bytesUsed.Set(float64(used))
}
