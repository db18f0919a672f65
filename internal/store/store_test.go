package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/rewear/internal/kv"
	"github.com/erazemk/rewear/internal/model"
)

// Every repository reports a rejected write and leaves its collection as it was.
func TestCreateFailsUniformlyWhenStorageRejectsWrites(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		key    string
		create func(s *Store) (any, error)
	}{
		{"items", KeyItems, func(s *Store) (any, error) { return s.Items.Create(ctx, jacket()) }},
		{"users", KeyUsers, func(s *Store) (any, error) { return s.Users.Create(ctx, model.User{Username: "u"}) }},
		{"swap requests", KeySwapRequests, func(s *Store) (any, error) {
			return s.SwapRequests.Create(ctx, model.SwapRequest{FromUserID: "a", ToUserID: "b"})
		}},
		{"notifications", KeyNotifications, func(s *Store) (any, error) {
			return s.Notifications.Create(ctx, model.Notification{UserID: "a"})
		}},
		{"chat", KeyChatMessages, func(s *Store) (any, error) {
			return s.Chat.Create(ctx, model.ChatMessage{FromUserID: "a", ToUserID: "b"})
		}},
		{"follows", KeyFollows, func(s *Store) (any, error) {
			return s.Follows.Create(ctx, model.Follow{FollowerID: "a", FollowingID: "b"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := newTestStore(t)

			_, err := tt.create(s)
			require.NoError(t, err)
			before, err := backend.Get(ctx, tt.key)
			require.NoError(t, err)

			backend.FailWrites(kv.ErrQuotaExceeded)
			_, err = tt.create(s)
			if tt.key == KeyFollows {
				// Re-following is a no-op that never writes.
				require.NoError(t, err)
				_, err = s.Follows.Create(ctx, model.Follow{FollowerID: "a", FollowingID: "c"})
			}
			assert.ErrorIs(t, err, kv.ErrWriteFailed)
			assert.ErrorIs(t, err, kv.ErrQuotaExceeded)

			after, err := backend.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestCollectionsUseTheirOwnKeys(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	s.Items.Create(ctx, jacket())
	s.Users.Create(ctx, model.User{})
	s.SwapRequests.Create(ctx, model.SwapRequest{})
	s.Notifications.Create(ctx, model.Notification{})
	s.Chat.Create(ctx, model.ChatMessage{})
	s.Follows.Create(ctx, model.Follow{})

	keys, err := backend.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		KeyItems, KeyUsers, KeySwapRequests, KeyNotifications, KeyChatMessages, KeyFollows,
	}, keys)
}

func TestCorruptCollectionReadsAsEmpty(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, KeyUsers, []byte("{corrupt")))

	assert.Empty(t, s.Users.List(ctx))
	assert.Nil(t, s.Users.Get(ctx, "anything"))

	// The next write replaces the corrupt value.
	created, err := s.Users.Create(ctx, model.User{Username: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, []model.User{*created}, s.Users.List(ctx))
}

func TestJWTSecretIsGeneratedOnce(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.JWTSecret(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := s.JWTSecret(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
