package model

import "time"

// Item is a garment listed on the marketplace. Images holds image ids; the
// encoded payloads live in the image library.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Size        string    `json:"size"`
	Type        string    `json:"type"`
	Brand       string    `json:"brand,omitempty"`
	Condition   string    `json:"condition"`
	RentPrice   *float64  `json:"rentPrice,omitempty"`
	Points      *int      `json:"points,omitempty"`
	MinRating   float64   `json:"minRating"`
	IsWashed    bool      `json:"isWashed"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	UserAvatar  string    `json:"userAvatar,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemWithImages is an item joined with its resolved image payloads.
type ItemWithImages struct {
	Item
	ImageData [][]byte `json:"imageData"`
}

// Item types.
const (
	ItemTypeSwap   = "swap"
	ItemTypeRent   = "rent"
	ItemTypeRedeem = "redeem"
)

// Item statuses.
const (
	ItemStatusPending  = "pending"
	ItemStatusApproved = "approved"
	ItemStatusRejected = "rejected"
	ItemStatusFlagged  = "flagged"
)

// ValidItemType reports whether t is a known item type.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeSwap, ItemTypeRent, ItemTypeRedeem:
		return true
	}
	return false
}

// ValidItemStatus reports whether s is a known item status.
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusPending, ItemStatusApproved, ItemStatusRejected, ItemStatusFlagged:
		return true
	}
	return false
}

// ItemPatch lists the fields an item update may change. Nil fields are left
// as they are.
type ItemPatch struct {
	Title       *string
	Description *string
	Category    *string
	Size        *string
	Type        *string
	Brand       *string
	Condition   *string
	RentPrice   *float64
	Points      *int
	MinRating   *float64
	IsWashed    *bool
	Tags        []string
	Images      []string
	Username    *string
	UserAvatar  *string
	Location    *string
	Status      *string
}

// Apply returns item with the patch merged over it.
func (p ItemPatch) Apply(item Item) Item {
	setString(&item.Title, p.Title)
	setString(&item.Description, p.Description)
	setString(&item.Category, p.Category)
	setString(&item.Size, p.Size)
	setString(&item.Type, p.Type)
	setString(&item.Brand, p.Brand)
	setString(&item.Condition, p.Condition)
	setString(&item.Username, p.Username)
	setString(&item.UserAvatar, p.UserAvatar)
	setString(&item.Location, p.Location)
	setString(&item.Status, p.Status)
	if p.RentPrice != nil {
		v := *p.RentPrice
		item.RentPrice = &v
	}
	if p.Points != nil {
		v := *p.Points
		item.Points = &v
	}
	if p.MinRating != nil {
		item.MinRating = *p.MinRating
	}
	if p.IsWashed != nil {
		item.IsWashed = *p.IsWashed
	}
	if p.Tags != nil {
		item.Tags = append([]string(nil), p.Tags...)
	}
	if p.Images != nil {
		item.Images = append([]string(nil), p.Images...)
	}
	return item
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
