package domain

import (
	"context"
	"time"
)

// Favorite records that a user saved a vendor.
// swagger:model Favorite
type Favorite struct {
	UserID    string    `json:"user_id"`
	VendorID  string    `json:"vendor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteRepository defines storage for the user/vendor favorites relation.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, vendorID string) error
	Remove(ctx context.Context, userID, vendorID string) (bool, error)
	Exists(ctx context.Context, userID, vendorID string) (bool, error)
	ListVendorIDs(ctx context.Context, userID string) ([]string, error)
}

// FavoriteService manages a user's saved vendors.
type FavoriteService interface {
	ListFavorites(ctx context.Context, actor Actor) ([]*Vendor, error)
	ListFavoriteIDs(ctx context.Context, actor Actor) ([]string, error)
	Add(ctx context.Context, actor Actor, vendorID string) error
	Remove(ctx context.Context, actor Actor, vendorID string) error
	// Toggle flips the favorite and returns whether the vendor is now a favorite.
	Toggle(ctx context.Context, actor Actor, vendorID string) (bool, error)
	IsFavorite(ctx context.Context, actor Actor, vendorID string) (bool, error)
}
