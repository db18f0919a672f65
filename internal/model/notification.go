package model

import "time"

// Notification is a message for UserID. Read only ever flips to true.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification types.
const (
	NotificationSwap   = "swap"
	NotificationSystem = "system"
	NotificationChat   = "chat"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationSwap, NotificationSystem, NotificationChat:
		return true
	}
	return false
}
