package store

import (
	"strconv"
	"testing"
	"time"

	"github.com/erazemk/rewear/internal/kv"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store over an unlimited in-memory backend with a
// clock that advances one second per stamp and sequential ids.
func newTestStore(t *testing.T, opts ...Option) (*Store, *kv.MemoryBackend) {
	t.Helper()

	backend := kv.NewMemoryBackend(0)
	ticks := 0
	ids := 0
	base := []Option{
		WithClock(func() time.Time {
			ticks++
			return epoch.Add(time.Duration(ticks) * time.Second)
		}),
		WithIDs(func() string {
			ids++
			return strconv.Itoa(ids)
		}),
	}
	return New(kv.New(backend), append(base, opts...)...), backend
}

func ptr[T any](v T) *T { return &v }
