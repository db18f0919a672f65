package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	input := model.User{Username: "Sarah Chen", Email: "sarah@example.com", Rating: 4.5, Points: 100}
	created, err := s.Users.Create(ctx, input)
	require.NoError(t, err)

	got := s.Users.Get(ctx, created.ID)
	require.NotNil(t, got)

	want := input
	want.ID, want.CreatedAt = created.ID, created.CreatedAt
	assert.Equal(t, want, *got)
}

func TestGetUserByUsername(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, _ := s.Users.Create(ctx, model.User{Username: "Priya Sharma"})

	got := s.Users.GetByUsername(ctx, "priya sharma")
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Nil(t, s.Users.GetByUsername(ctx, "nobody"))
}

func TestUpdateUser(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, _ := s.Users.Create(ctx, model.User{Username: "sarah", Points: 100})

	updated, err := s.Users.Update(ctx, created.ID, model.UserPatch{Points: ptr(40), TotalSwaps: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Points)
	assert.Equal(t, 2, updated.TotalSwaps)
	assert.Equal(t, "sarah", updated.Username)
	assert.Equal(t, *updated, *s.Users.Get(ctx, created.ID))
}

func TestUpdateMissingUser(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Users.Create(ctx, model.User{Username: "sarah"})
	before := s.Users.List(ctx)

	updated, err := s.Users.Update(ctx, "missing", model.UserPatch{Points: ptr(1)})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := s.Users.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Equal(t, before, s.Users.List(ctx))
}

func TestDeleteUser(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, _ := s.Users.Create(ctx, model.User{Username: "sarah"})

	deleted, err := s.Users.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, s.Users.Get(ctx, created.ID))
}
