package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/kv"
	"github.com/erazemk/rewear/internal/model"
)

func TestConversationIsOrderedAndSymmetric(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	m1, err := s.Chat.Create(ctx, model.ChatMessage{FromUserID: "a", ToUserID: "b", Message: "hi"})
	require.NoError(t, err)
	s.Chat.Create(ctx, model.ChatMessage{FromUserID: "a", ToUserID: "c", Message: "elsewhere"})
	m2, err := s.Chat.Create(ctx, model.ChatMessage{FromUserID: "b", ToUserID: "a", Message: "hello"})
	require.NoError(t, err)

	want := []model.ChatMessage{*m1, *m2}
	assert.Equal(t, want, s.Chat.Conversation(ctx, "a", "b"))
	assert.Equal(t, want, s.Chat.Conversation(ctx, "b", "a"))
}

func TestConversationSortsByCreatedAt(t *testing.T) {
	backend := kv.NewMemoryBackend(0)
	ctx := context.Background()

	t1 := epoch
	t2 := epoch.Add(time.Minute)
	stored := []model.ChatMessage{
		{ID: "late", FromUserID: "b", ToUserID: "a", CreatedAt: t2},
		{ID: "early", FromUserID: "a", ToUserID: "b", CreatedAt: t1},
		{ID: "tie", FromUserID: "a", ToUserID: "b", CreatedAt: t2},
	}
	sub := kv.New(backend)
	require.NoError(t, kv.Write(ctx, sub, KeyChatMessages, stored))

	s := New(sub)
	got := s.Chat.Conversation(ctx, "b", "a")

	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	// Equal timestamps keep stored order.
	assert.Equal(t, []string{"early", "late", "tie"}, ids)
}

func TestChatPartners(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Chat.Create(ctx, model.ChatMessage{FromUserID: "a", ToUserID: "b"})
	s.Chat.Create(ctx, model.ChatMessage{FromUserID: "c", ToUserID: "a"})
	s.Chat.Create(ctx, model.ChatMessage{FromUserID: "b", ToUserID: "c"})
	s.Chat.Create(ctx, model.ChatMessage{FromUserID: "b", ToUserID: "a"})

	assert.Equal(t, []string{"b", "c"}, s.Chat.Partners(ctx, "a"))
	assert.Len(t, s.Chat.ListByUser(ctx, "a"), 3)
	assert.Empty(t, s.Chat.Partners(ctx, "z"))
}

func TestDeleteChatMessage(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	m, _ := s.Chat.Create(ctx, model.ChatMessage{FromUserID: "a", ToUserID: "b"})

	deleted, err := s.Chat.Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, s.Chat.Get(ctx, m.ID))
}
