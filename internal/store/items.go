package store

import (
	"context"
	"fmt"

	"github.com/erazemk/rewear/internal/model"
)

// Items is the repository for listed garments.
type Items struct {
	c      collection[model.Item]
	images ImageResolver
}

// List returns every item in insertion order.
func (r *Items) List(ctx context.Context) []model.Item {
	return r.c.all(ctx)
}

// Get returns the item with the given id, or nil.
func (r *Items) Get(ctx context.Context, id string) *model.Item {
	return r.c.find(ctx, func(it model.Item) bool { return it.ID == id })
}

// ListByUser returns the items owned by userID.
func (r *Items) ListByUser(ctx context.Context, userID string) []model.Item {
	return r.c.filter(ctx, func(it model.Item) bool { return it.UserID == userID })
}

// ListByStatus returns the items with the given moderation status.
func (r *Items) ListByStatus(ctx context.Context, status string) []model.Item {
	return r.c.filter(ctx, func(it model.Item) bool { return it.Status == status })
}

// Create stamps and stores a new item. Items without a status enter the
// moderation queue as pending. The returned error wraps a *kv.WriteError
// when storage is full or unavailable.
func (r *Items) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	now := r.c.stamp()
	item.ID = "item-" + r.c.newID()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = model.ItemStatusPending
	}

	if err := r.c.insert(ctx, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	r.c.log.Debug("created item", "id", item.ID, "user_id", item.UserID)
	return &item, nil
}

// Update merges p over the stored item and refreshes UpdatedAt. It returns
// nil and no error if the item does not exist.
func (r *Items) Update(ctx context.Context, id string, p model.ItemPatch) (*model.Item, error) {
	updated, err := r.c.replace(ctx,
		func(it model.Item) bool { return it.ID == id },
		func(it model.Item) model.Item {
			it = p.Apply(it)
			it.UpdatedAt = r.c.stamp()
			return it
		},
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if updated == nil {
		r.c.log.Debug("item not found for update", "id", id)
	}
	return updated, nil
}

// UpdateStatus moves an item through moderation.
func (r *Items) UpdateStatus(ctx context.Context, id, status string) (*model.Item, error) {
	return r.Update(ctx, id, model.ItemPatch{Status: &status})
}

// Delete removes an item. It reports false if the item does not exist.
func (r *Items) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.c.remove(ctx, func(it model.Item) bool { return it.ID == id })
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	if !deleted {
		r.c.log.Debug("item not found for deletion", "id", id)
	}
	return deleted, nil
}
