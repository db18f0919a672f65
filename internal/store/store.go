// Package store holds the entity repositories. Each repository owns one
// collection, persisted as a single JSON array under one substrate key, and
// every call round-trips through the substrate: there is no cache.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/rewear/internal/kv"
	"github.com/erazemk/rewear/internal/model"
)

// Substrate keys, one per collection.
const (
	KeyItems         = "rewear-items"
	KeyUsers         = "rewear-users"
	KeySwapRequests  = "rewear-swap-requests"
	KeyNotifications = "rewear-notifications"
	KeyChatMessages  = "rewear-chat-messages"
	KeyFollows       = "rewear-follows"
)

// Store groups the six repositories over one substrate.
type Store struct {
	Items         *Items
	Users         *Users
	SwapRequests  *SwapRequests
	Notifications *Notifications
	Chat          *Chat
	Follows       *Follows

	kv  *kv.Substrate
	env *env
}

// Option configures a Store.
type Option func(*options)

type options struct {
	env
	images ImageResolver
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs replaces the random id generator.
func WithIDs(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithImages sets the resolver used by Items.GetWithImages.
func WithImages(r ImageResolver) Option {
	return func(o *options) { o.images = r }
}

// WithLogger sets the repository logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New builds the repositories over s.
func New(s *kv.Substrate, opts ...Option) *Store {
	o := options{env: env{
		now:   time.Now,
		newID: uuid.NewString,
		log:   slog.Default(),
	}}
	for _, opt := range opts {
		opt(&o)
	}
	e := &o.env

	return &Store{
		Items:         &Items{c: newCollection[model.Item](s, KeyItems, e), images: o.images},
		Users:         &Users{c: newCollection[model.User](s, KeyUsers, e)},
		SwapRequests:  &SwapRequests{c: newCollection[model.SwapRequest](s, KeySwapRequests, e)},
		Notifications: &Notifications{c: newCollection[model.Notification](s, KeyNotifications, e)},
		Chat:          &Chat{c: newCollection[model.ChatMessage](s, KeyChatMessages, e)},
		Follows:       &Follows{c: newCollection[model.Follow](s, KeyFollows, e)},
		kv:            s,
		env:           e,
	}
}

// env is shared by every repository of one Store.
type env struct {
	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

// stamp returns the current time in UTC without a monotonic reading, so a
// stamped record compares equal to its decoded copy.
func (e *env) stamp() time.Time {
	return e.now().UTC()
}

// collection is the read-modify-write core shared by the repositories.
type collection[T any] struct {
	kv  *kv.Substrate
	key string
	*env
}

func newCollection[T any](s *kv.Substrate, key string, e *env) collection[T] {
	return collection[T]{kv: s, key: key, env: e}
}

func (c collection[T]) all(ctx context.Context) []T {
	return kv.Read[T](ctx, c.kv, c.key)
}

func (c collection[T]) save(ctx context.Context, records []T) error {
	return kv.Write(ctx, c.kv, c.key, records)
}

func (c collection[T]) filter(ctx context.Context, keep func(T) bool) []T {
	var out []T
	for _, r := range c.all(ctx) {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (c collection[T]) find(ctx context.Context, match func(T) bool) *T {
	for _, r := range c.all(ctx) {
		if match(r) {
			return &r
		}
	}
	return nil
}

func (c collection[T]) insert(ctx context.Context, record T) error {
	records := c.all(ctx)
	records = append(records, record)
	return c.save(ctx, records)
}

// replace rewrites the first record matching match with mutate's result.
// It returns nil and no error if nothing matches.
func (c collection[T]) replace(ctx context.Context, match func(T) bool, mutate func(T) T) (*T, error) {
	records := c.all(ctx)
	for i, r := range records {
		if !match(r) {
			continue
		}
		updated := mutate(r)
		records[i] = updated
		if err := c.save(ctx, records); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, nil
}

// remove drops every record matching match. It reports false, without
// writing, if nothing matched.
func (c collection[T]) remove(ctx context.Context, match func(T) bool) (bool, error) {
	records := c.all(ctx)
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := c.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}
