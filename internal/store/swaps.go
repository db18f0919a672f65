package store

import (
	"context"
	"fmt"

	"github.com/erazemk/rewear/internal/model"
)

// SwapRequests is the repository for swap proposals.
type SwapRequests struct {
	c collection[model.SwapRequest]
}

// List returns every swap request.
func (r *SwapRequests) List(ctx context.Context) []model.SwapRequest {
	return r.c.all(ctx)
}

// Get returns the swap request with the given id, or nil.
func (r *SwapRequests) Get(ctx context.Context, id string) *model.SwapRequest {
	return r.c.find(ctx, func(s model.SwapRequest) bool { return s.ID == id })
}

// ListByUser returns the requests userID initiated or received.
func (r *SwapRequests) ListByUser(ctx context.Context, userID string) []model.SwapRequest {
	return r.c.filter(ctx, func(s model.SwapRequest) bool {
		return s.FromUserID == userID || s.ToUserID == userID
	})
}

// ListIncoming returns the requests addressed to userID with the given
// status, or all of them if status is empty.
func (r *SwapRequests) ListIncoming(ctx context.Context, userID, status string) []model.SwapRequest {
	return r.c.filter(ctx, func(s model.SwapRequest) bool {
		return s.ToUserID == userID && (status == "" || s.Status == status)
	})
}

// Create stamps and stores a new request; an empty status becomes pending.
func (r *SwapRequests) Create(ctx context.Context, s model.SwapRequest) (*model.SwapRequest, error) {
	now := r.c.stamp()
	s.ID = r.c.newID()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = model.SwapStatusPending
	}

	if err := r.c.insert(ctx, s); err != nil {
		return nil, fmt.Errorf("creating swap request: %w", err)
	}
	return &s, nil
}

// Update merges p over the stored request and refreshes UpdatedAt. Status
// transitions are not checked here.
func (r *SwapRequests) Update(ctx context.Context, id string, p model.SwapRequestPatch) (*model.SwapRequest, error) {
	updated, err := r.c.replace(ctx,
		func(s model.SwapRequest) bool { return s.ID == id },
		func(s model.SwapRequest) model.SwapRequest {
			s = p.Apply(s)
			s.UpdatedAt = r.c.stamp()
			return s
		},
	)
	if err != nil {
		return nil, fmt.Errorf("updating swap request: %w", err)
	}
	return updated, nil
}

// UpdateStatus sets the status of a request.
func (r *SwapRequests) UpdateStatus(ctx context.Context, id, status string) (*model.SwapRequest, error) {
	return r.Update(ctx, id, model.SwapRequestPatch{Status: &status})
}

// Delete removes a request.
func (r *SwapRequests) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.c.remove(ctx, func(s model.SwapRequest) bool { return s.ID == id })
	if err != nil {
		return false, fmt.Errorf("deleting swap request: %w", err)
	}
	return deleted, nil
}
