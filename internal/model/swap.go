package model

import "time"

// SwapRequest asks the owner of ToItemID (ToUserID) to trade it for
// FromItemID. Status transitions are driven by callers.
type SwapRequest struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	FromItemID string    `json:"fromItemId"`
	ToItemID   string    `json:"toItemId"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Swap request statuses.
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
)

// ValidSwapStatus reports whether s is a known swap request status.
func ValidSwapStatus(s string) bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected, SwapStatusCompleted:
		return true
	}
	return false
}

// SwapRequestPatch lists the fields a swap request update may change.
type SwapRequestPatch struct {
	FromItemID *string
	ToItemID   *string
	Status     *string
	Message    *string
}

// Apply returns r with the patch merged over it.
func (p SwapRequestPatch) Apply(r SwapRequest) SwapRequest {
	setString(&r.FromItemID, p.FromItemID)
	setString(&r.ToItemID, p.ToItemID)
	setString(&r.Status, p.Status)
	setString(&r.Message, p.Message)
	return r
}
