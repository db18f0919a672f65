package store

import (
	"context"
	"fmt"

	"github.com/erazemk/rewear/internal/model"
)

// Notifications is the repository for per-user notifications.
type Notifications struct {
	c collection[model.Notification]
}

func (r *Notifications) List(ctx context.Context) []model.Notification {
	return r.c.all(ctx)
}

func (r *Notifications) Get(ctx context.Context, id string) *model.Notification {
	return r.c.find(ctx, func(n model.Notification) bool { return n.ID == id })
}

// ListByUser returns userID's notifications, oldest first.
func (r *Notifications) ListByUser(ctx context.Context, userID string) []model.Notification {
	return r.c.filter(ctx, func(n model.Notification) bool { return n.UserID == userID })
}

// UnreadCount returns how many of userID's notifications are unread.
func (r *Notifications) UnreadCount(ctx context.Context, userID string) int {
	return len(r.c.filter(ctx, func(n model.Notification) bool {
		return n.UserID == userID && !n.Read
	}))
}

// Create stamps and stores a new, unread notification.
func (r *Notifications) Create(ctx context.Context, n model.Notification) (*model.Notification, error) {
	n.ID = r.c.newID()
	n.CreatedAt = r.c.stamp()
	n.Read = false

	if err := r.c.insert(ctx, n); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return &n, nil
}

// MarkAsRead flips a notification to read. It reports false if the
// notification does not exist. Marking a read notification again does not
// write.
func (r *Notifications) MarkAsRead(ctx context.Context, id string) (bool, error) {
	n := r.Get(ctx, id)
	if n == nil {
		return false, nil
	}
	if n.Read {
		return true, nil
	}

	_, err := r.c.replace(ctx,
		func(n model.Notification) bool { return n.ID == id },
		func(n model.Notification) model.Notification {
			n.Read = true
			return n
		},
	)
	if err != nil {
		return false, fmt.Errorf("marking notification read: %w", err)
	}
	return true, nil
}

// MarkAllAsRead flips every unread notification of userID in a single write
// and returns how many changed.
func (r *Notifications) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	records := r.c.all(ctx)
	changed := 0
	for i := range records {
		if records[i].UserID == userID && !records[i].Read {
			records[i].Read = true
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := r.c.save(ctx, records); err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return changed, nil
}

func (r *Notifications) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.c.remove(ctx, func(n model.Notification) bool { return n.ID == id })
	if err != nil {
		return false, fmt.Errorf("deleting notification: %w", err)
	}
	return deleted, nil
}
