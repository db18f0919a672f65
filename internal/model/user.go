package model

import "time"

// User is a marketplace member. Points are only spent through redemption or
// an explicit update; callers check the balance before spending.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar,omitempty"`
	Rating     float64   `json:"rating"`
	TotalSwaps int       `json:"totalSwaps"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserPatch lists the fields a user update may change.
type UserPatch struct {
	Username   *string
	Email      *string
	Avatar     *string
	Rating     *float64
	TotalSwaps *int
	Points     *int
}

// Apply returns u with the patch merged over it.
func (p UserPatch) Apply(u User) User {
	setString(&u.Username, p.Username)
	setString(&u.Email, p.Email)
	setString(&u.Avatar, p.Avatar)
	if p.Rating != nil {
		u.Rating = *p.Rating
	}
	if p.TotalSwaps != nil {
		u.TotalSwaps = *p.TotalSwaps
	}
	if p.Points != nil {
		u.Points = *p.Points
	}
	return u
}
