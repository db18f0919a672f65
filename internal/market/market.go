// Package market implements the marketplace actions that span several
// repositories: redeeming items for points, proposing and answering swaps,
// chatting and following.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/store"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrSwapNotFound       = errors.New("swap request not found")
	ErrNotRedeemable      = errors.New("item cannot be redeemed for points")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrOwnItem            = errors.New("item belongs to the caller")
	ErrNotOwner           = errors.New("item does not belong to the caller")
	ErrNotRecipient       = errors.New("swap request is not addressed to the caller")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrSelfFollow         = errors.New("users cannot follow themselves")
)

// Service runs marketplace actions against a store. Caller ids are assumed to
// be authenticated already.
type Service struct {
	store *store.Store
	log   *slog.Logger
}

// New returns a Service over s.
func New(s *store.Store) *Service {
	return &Service{store: s, log: slog.Default()}
}

// Redeem spends userID's points on a redeemable item and returns the updated
// user. If the balance does not cover the item the user is left unchanged and
// the error wraps ErrInsufficientPoints.
func (s *Service) Redeem(ctx context.Context, userID, itemID string) (*model.User, error) {
	user := s.store.Users.Get(ctx, userID)
	if user == nil {
		return nil, ErrUserNotFound
	}
	item := s.store.Items.Get(ctx, itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.Type != model.ItemTypeRedeem || item.Points == nil || item.Status != model.ItemStatusApproved {
		return nil, ErrNotRedeemable
	}
	if item.UserID == userID {
		return nil, ErrOwnItem
	}

	cost := *item.Points
	if user.Points < cost {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPoints, user.Points, cost)
	}

	balance := user.Points - cost
	updated, err := s.store.Users.Update(ctx, userID, model.UserPatch{Points: &balance})
	if err != nil {
		return nil, fmt.Errorf("redeeming item: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	s.notify(ctx, model.Notification{
		UserID:  userID,
		Title:   "Item Redeemed!",
		Message: fmt.Sprintf("You've successfully redeemed %s for %d points.", item.Title, cost),
		Type:    model.NotificationSystem,
	})
	s.log.Info("item redeemed", "user_id", userID, "item_id", itemID, "points", cost)
	return updated, nil
}

// RequestSwap proposes trading fromItemID (optional) for toItemID and tells
// the owner of toItemID about it.
func (s *Service) RequestSwap(ctx context.Context, fromUserID, toItemID, fromItemID, message string) (*model.SwapRequest, error) {
	target := s.store.Items.Get(ctx, toItemID)
	if target == nil {
		return nil, ErrItemNotFound
	}
	if target.UserID == fromUserID {
		return nil, ErrOwnItem
	}
	if fromItemID != "" {
		offered := s.store.Items.Get(ctx, fromItemID)
		if offered == nil {
			return nil, ErrItemNotFound
		}
		if offered.UserID != fromUserID {
			return nil, ErrNotOwner
		}
	}

	req, err := s.store.SwapRequests.Create(ctx, model.SwapRequest{
		FromUserID: fromUserID,
		ToUserID:   target.UserID,
		FromItemID: fromItemID,
		ToItemID:   toItemID,
		Status:     model.SwapStatusPending,
		Message:    message,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting swap: %w", err)
	}

	s.notify(ctx, model.Notification{
		UserID:  target.UserID,
		Title:   "New swap request",
		Message: fmt.Sprintf("%s wants to swap for your %s.", s.displayName(ctx, fromUserID), target.Title),
		Type:    model.NotificationSwap,
	})
	return req, nil
}

// RespondSwap lets the owner of the requested item move a swap request to
// status and tells the initiator. Pending requests may be accepted, rejected
// or completed; accepted ones only completed or rejected. Completed and
// rejected requests are final, so a swap is counted for both users exactly
// once. If counting fails after the status is stored, the error is returned
// with a nil request and the status change stays in place.
func (s *Service) RespondSwap(ctx context.Context, responderID, requestID, status string) (*model.SwapRequest, error) {
	if !model.ValidSwapStatus(status) || status == model.SwapStatusPending {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	current := s.store.SwapRequests.Get(ctx, requestID)
	if current == nil {
		return nil, ErrSwapNotFound
	}
	if current.ToUserID != responderID {
		return nil, ErrNotRecipient
	}
	if !canMoveSwap(current.Status, status) {
		return nil, fmt.Errorf("%w: %s request cannot become %s", ErrInvalidStatus, current.Status, status)
	}

	req, err := s.store.SwapRequests.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, fmt.Errorf("responding to swap: %w", err)
	}
	if req == nil {
		return nil, ErrSwapNotFound
	}

	if status == model.SwapStatusCompleted {
		for _, id := range []string{req.FromUserID, req.ToUserID} {
			if err := s.countSwap(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	s.notify(ctx, model.Notification{
		UserID:  req.FromUserID,
		Title:   "Swap request " + status,
		Message: fmt.Sprintf("%s marked your swap request as %s.", s.displayName(ctx, req.ToUserID), status),
		Type:    model.NotificationSwap,
	})
	return req, nil
}

func canMoveSwap(from, to string) bool {
	switch from {
	case model.SwapStatusPending:
		return true
	case model.SwapStatusAccepted:
		return to == model.SwapStatusCompleted || to == model.SwapStatusRejected
	default:
		return false
	}
}

// SendMessage stores a chat message to an existing user and notifies them.
func (s *Service) SendMessage(ctx context.Context, fromUserID, toUserID, text string) (*model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if s.store.Users.Get(ctx, toUserID) == nil {
		return nil, ErrUserNotFound
	}

	msg, err := s.store.Chat.Create(ctx, model.ChatMessage{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    text,
	})
	if err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}

	s.notify(ctx, model.Notification{
		UserID:  toUserID,
		Title:   "New message",
		Message: fmt.Sprintf("%s sent you a message.", s.displayName(ctx, fromUserID)),
		Type:    model.NotificationChat,
	})
	return msg, nil
}

// Follow makes followerID follow followingID. Following twice is a no-op.
func (s *Service) Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}
	if s.store.Users.Get(ctx, followingID) == nil {
		return nil, ErrUserNotFound
	}
	f, err := s.store.Follows.Create(ctx, model.Follow{FollowerID: followerID, FollowingID: followingID})
	if err != nil {
		return nil, fmt.Errorf("following user: %w", err)
	}
	return f, nil
}

// Unfollow removes the edge and reports whether there was one.
func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	ok, err := s.store.Follows.Delete(ctx, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("unfollowing user: %w", err)
	}
	return ok, nil
}

func (s *Service) countSwap(ctx context.Context, userID string) error {
	u := s.store.Users.Get(ctx, userID)
	if u == nil {
		return nil
	}
	total := u.TotalSwaps + 1
	if _, err := s.store.Users.Update(ctx, userID, model.UserPatch{TotalSwaps: &total}); err != nil {
		return fmt.Errorf("counting swap: %w", err)
	}
	return nil
}

// notify is best effort: the action it reports has already been stored.
func (s *Service) notify(ctx context.Context, n model.Notification) {
	if _, err := s.store.Notifications.Create(ctx, n); err != nil {
		s.log.Warn("dropping notification", "user_id", n.UserID, "title", n.Title, "error", err)
	}
}

func (s *Service) displayName(ctx context.Context, userID string) string {
	if u := s.store.Users.Get(ctx, userID); u != nil && u.Username != "" {
		return u.Username
	}
	return "Someone"
}
