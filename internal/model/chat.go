package model

import "time"

// ChatMessage is one direct message. Conversations are not stored; two
// messages share one when their unordered {from, to} pairs match.
type ChatMessage struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Between reports whether m was exchanged between a and b, in either direction.
func (m ChatMessage) Between(a, b string) bool {
	return (m.FromUserID == a && m.ToUserID == b) ||
		(m.FromUserID == b && m.ToUserID == a)
}

// Counterpart returns the other participant from userID's point of view,
// or "" if userID took no part in m.
func (m ChatMessage) Counterpart(userID string) string {
	switch userID {
	case m.FromUserID:
		return m.ToUserID
	case m.ToUserID:
		return m.FromUserID
	}
	return ""
}
