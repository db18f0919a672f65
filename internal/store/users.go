package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/rewear/internal/model"
)

// Users is the repository for marketplace members.
type Users struct {
	c collection[model.User]
}

// List returns every user.
func (r *Users) List(ctx context.Context) []model.User {
	return r.c.all(ctx)
}

// Get returns the user with the given id, or nil.
func (r *Users) Get(ctx context.Context, id string) *model.User {
	return r.c.find(ctx, func(u model.User) bool { return u.ID == id })
}

// GetByUsername returns the first user whose username matches,
// ignoring case, or nil.
func (r *Users) GetByUsername(ctx context.Context, username string) *model.User {
	return r.c.find(ctx, func(u model.User) bool { return strings.EqualFold(u.Username, username) })
}

// Create stamps and stores a new user.
func (r *Users) Create(ctx context.Context, u model.User) (*model.User, error) {
	u.ID = r.c.newID()
	u.CreatedAt = r.c.stamp()

	if err := r.c.insert(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &u, nil
}

// Update merges p over the stored user. Points are stored as given: callers
// check the balance before spending. It returns nil and no error if the user
// does not exist.
func (r *Users) Update(ctx context.Context, id string, p model.UserPatch) (*model.User, error) {
	updated, err := r.c.replace(ctx,
		func(u model.User) bool { return u.ID == id },
		p.Apply,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return updated, nil
}

// Delete removes a user. Items, requests and messages referencing the user
// are left in place.
func (r *Users) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.c.remove(ctx, func(u model.User) bool { return u.ID == id })
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return deleted, nil
}
