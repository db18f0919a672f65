package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/erazemk/rewear/internal/model"
)

// Chat is the repository for direct messages.
type Chat struct {
	c collection[model.ChatMessage]
}

func (r *Chat) List(ctx context.Context) []model.ChatMessage {
	return r.c.all(ctx)
}

func (r *Chat) Get(ctx context.Context, id string) *model.ChatMessage {
	return r.c.find(ctx, func(m model.ChatMessage) bool { return m.ID == id })
}

// Conversation returns the messages exchanged between userID1 and userID2,
// in either direction, oldest first. Messages with equal timestamps keep
// their stored order. The argument order does not matter.
func (r *Chat) Conversation(ctx context.Context, userID1, userID2 string) []model.ChatMessage {
	msgs := r.c.filter(ctx, func(m model.ChatMessage) bool { return m.Between(userID1, userID2) })
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs
}

// ListByUser returns every message userID sent or received.
func (r *Chat) ListByUser(ctx context.Context, userID string) []model.ChatMessage {
	return r.c.filter(ctx, func(m model.ChatMessage) bool {
		return m.FromUserID == userID || m.ToUserID == userID
	})
}

// Partners returns the users userID has exchanged messages with, most
// recently active first.
func (r *Chat) Partners(ctx context.Context, userID string) []string {
	last := make(map[string]model.ChatMessage)
	for _, m := range r.ListByUser(ctx, userID) {
		other := m.Counterpart(userID)
		if prev, ok := last[other]; !ok || !m.CreatedAt.Before(prev.CreatedAt) {
			last[other] = m
		}
	}

	partners := make([]string, 0, len(last))
	for id := range last {
		partners = append(partners, id)
	}
	sort.Slice(partners, func(i, j int) bool {
		ti, tj := last[partners[i]].CreatedAt, last[partners[j]].CreatedAt
		if ti.Equal(tj) {
			return partners[i] < partners[j]
		}
		return ti.After(tj)
	})
	return partners
}

// Create stamps and stores a new message.
func (r *Chat) Create(ctx context.Context, m model.ChatMessage) (*model.ChatMessage, error) {
	m.ID = r.c.newID()
	m.CreatedAt = r.c.stamp()

	if err := r.c.insert(ctx, m); err != nil {
		return nil, fmt.Errorf("creating chat message: %w", err)
	}
	return &m, nil
}

func (r *Chat) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.c.remove(ctx, func(m model.ChatMessage) bool { return m.ID == id })
	if err != nil {
		return false, fmt.Errorf("deleting chat message: %w", err)
	}
	return deleted, nil
}
