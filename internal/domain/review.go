package domain

import (
	"context"
	"time"
)

// Review is a user's rating of a vendor. Only verified reviews count toward the vendor rating.
// swagger:model Review
type Review struct {
	ID         string    `json:"id"`
	VendorID   string    `json:"vendor_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VendorRating is the recomputed rating of a vendor.
type VendorRating struct {
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// ReviewRepository defines review storage.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*Review, error)
	ListVerifiedByVendor(ctx context.Context, vendorID string) ([]*Review, error)
	SetVerified(ctx context.Context, id string, verified bool) (*Review, error)
	Delete(ctx context.Context, id string) error
}

// ReviewService manages reviews and keeps vendor ratings in sync.
type ReviewService interface {
	ListReviews(ctx context.Context, vendorID string) ([]*Review, error)
	CreateReview(ctx context.Context, actor Actor, review *Review) error
	SetVerified(ctx context.Context, actor Actor, id string, verified bool) (*Review, error)
	DeleteReview(ctx context.Context, actor Actor, id string) error
	RecomputeVendorRating(ctx context.Context, vendorID string) (VendorRating, error)
}
