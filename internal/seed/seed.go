// Package seed fills an empty marketplace with sample listings.
package seed

import (
	"context"
	"log/slog"

	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/store"
)

// Fixtures returns the sample listings created on first use. Image ids are
// placeholders; they resolve to nothing until real photos are added.
func Fixtures() []model.Item {
	rentPrice := 75.0
	return []model.Item{
		{
			Title:       "Vintage Levi's Denim Jacket",
			Description: "Classic 90s denim jacket in excellent condition. Perfect for layering and creating trendy outfits. Shows minimal wear with authentic vintage character.",
			Category:    "Jackets",
			Size:        "M",
			Type:        model.ItemTypeSwap,
			Brand:       "Levi's",
			Condition:   "Excellent",
			MinRating:   3,
			IsWashed:    true,
			Tags:        []string{"#Vintage", "#Denim", "#90s"},
			Images:      []string{"sample1"},
			UserID:      "user1",
			Username:    "Sarah Chen",
			UserAvatar:  "https://images.unsplash.com/photo-1494790108755-2616b332b6c8?w=100",
			Location:    "Mumbai, India",
			Status:      model.ItemStatusApproved,
		},
		{
			Title:       "Designer Silk Scarf - Hermès Style",
			Description: "Luxurious silk scarf with beautiful paisley pattern. Perfect for special occasions or adding elegance to any outfit. Authentic designer quality.",
			Category:    "Accessories",
			Size:        "Free Size",
			Type:        model.ItemTypeRent,
			Brand:       "Hermès",
			Condition:   "Like New",
			RentPrice:   &rentPrice,
			MinRating:   4,
			IsWashed:    true,
			Tags:        []string{"#Designer", "#Silk", "#Luxury"},
			Images:      []string{"sample2"},
			UserID:      "user2",
			Username:    "Priya Sharma",
			UserAvatar:  "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100",
			Location:    "Delhi, India",
			Status:      model.ItemStatusApproved,
		},
	}
}

// Initialize creates the fixtures if the items collection is empty and
// returns how many were stored. With items already present it does nothing,
// so calling it on every startup is safe. A fixture that cannot be stored is
// logged and skipped; the rest are still attempted.
func Initialize(ctx context.Context, items *store.Items) int {
	if existing := items.List(ctx); len(existing) > 0 {
		slog.Debug("sample data already present, skipping", "items", len(existing))
		return 0
	}

	created := 0
	for i, fixture := range Fixtures() {
		if _, err := items.Create(ctx, fixture); err != nil {
			slog.Warn("skipping sample item", "index", i+1, "title", fixture.Title, "error", err)
			continue
		}
		created++
	}

	slog.Info("sample data initialized", "items", created)
	return created
}
