package store

import (
	"context"
	"fmt"

	"github.com/erazemk/rewear/internal/model"
)

// Follows is the repository for follow edges.
type Follows struct {
	c collection[model.Follow]
}

func (r *Follows) List(ctx context.Context) []model.Follow {
	return r.c.all(ctx)
}

// Followers returns the edges pointing at userID.
func (r *Follows) Followers(ctx context.Context, userID string) []model.Follow {
	return r.c.filter(ctx, func(f model.Follow) bool { return f.FollowingID == userID })
}

// Following returns the edges leaving userID.
func (r *Follows) Following(ctx context.Context, userID string) []model.Follow {
	return r.c.filter(ctx, func(f model.Follow) bool { return f.FollowerID == userID })
}

// IsFollowing reports whether followerID follows followingID.
func (r *Follows) IsFollowing(ctx context.Context, followerID, followingID string) bool {
	return r.find(ctx, followerID, followingID) != nil
}

// Create stores a follow edge. (FollowerID, FollowingID) is unique: if the
// edge exists already it is returned unchanged and nothing is written.
func (r *Follows) Create(ctx context.Context, f model.Follow) (*model.Follow, error) {
	if existing := r.find(ctx, f.FollowerID, f.FollowingID); existing != nil {
		return existing, nil
	}

	f.ID = r.c.newID()
	f.CreatedAt = r.c.stamp()

	if err := r.c.insert(ctx, f); err != nil {
		return nil, fmt.Errorf("creating follow: %w", err)
	}
	return &f, nil
}

// Delete removes the edge from followerID to followingID, including any
// duplicates written before edges were unique.
func (r *Follows) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	deleted, err := r.c.remove(ctx, func(f model.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	})
	if err != nil {
		return false, fmt.Errorf("deleting follow: %w", err)
	}
	return deleted, nil
}

func (r *Follows) find(ctx context.Context, followerID, followingID string) *model.Follow {
	return r.c.find(ctx, func(f model.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	})
}
