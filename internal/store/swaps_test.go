package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/model"
)

func TestCreateSwapRequest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.SwapRequests.Create(ctx, model.SwapRequest{
		FromUserID: "alice",
		ToUserID:   "bob",
		ToItemID:   "item-9",
		Message:    "Trade for my scarf?",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusPending, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, *created, *s.SwapRequests.Get(ctx, created.ID))
}

func TestListSwapRequestsByUser(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.SwapRequests.Create(ctx, model.SwapRequest{FromUserID: "alice", ToUserID: "bob"})
	s.SwapRequests.Create(ctx, model.SwapRequest{FromUserID: "bob", ToUserID: "carol"})
	s.SwapRequests.Create(ctx, model.SwapRequest{FromUserID: "carol", ToUserID: "alice", Status: model.SwapStatusRejected})

	assert.Len(t, s.SwapRequests.ListByUser(ctx, "alice"), 2)
	assert.Len(t, s.SwapRequests.ListByUser(ctx, "bob"), 2)
	assert.Len(t, s.SwapRequests.ListByUser(ctx, "dave"), 0)

	assert.Len(t, s.SwapRequests.ListIncoming(ctx, "alice", ""), 1)
	assert.Len(t, s.SwapRequests.ListIncoming(ctx, "alice", model.SwapStatusPending), 0)
	assert.Len(t, s.SwapRequests.ListIncoming(ctx, "carol", model.SwapStatusPending), 1)
}

func TestUpdateSwapRequestStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, _ := s.SwapRequests.Create(ctx, model.SwapRequest{FromUserID: "alice", ToUserID: "bob"})

	updated, err := s.SwapRequests.UpdateStatus(ctx, created.ID, model.SwapStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusAccepted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	missing, err := s.SwapRequests.UpdateStatus(ctx, "missing", model.SwapStatusRejected)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteSwapRequest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, _ := s.SwapRequests.Create(ctx, model.SwapRequest{FromUserID: "alice", ToUserID: "bob"})

	deleted, err := s.SwapRequests.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.SwapRequests.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
