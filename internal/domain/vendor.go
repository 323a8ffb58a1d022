package domain

import (
	"context"
	"time"
)

// Vendor is a service provider profile. ID equals the owning user's ID.
// Rating and ReviewCount are recomputed from verified reviews.
// swagger:model Vendor
type Vendor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Website       string    `json:"website"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	StartingPrice float64   `json:"starting_price"`
	Services      []string  `json:"services"`
	IsApproved    bool      `json:"is_approved"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VendorPatch holds the vendor-editable fields. Approval, featuring and rating are managed elsewhere.
type VendorPatch struct {
	Name          *string   `json:"name"`
	Category      *string   `json:"category"`
	Description   *string   `json:"description"`
	Location      *string   `json:"location"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Website       *string   `json:"website"`
	StartingPrice *float64  `json:"starting_price"`
	Services      *[]string `json:"services"`
}

// VendorFilter narrows vendor directory listings.
type VendorFilter struct {
	Category     string `json:"category"`
	ApprovedOnly bool   `json:"approved_only"`
	FeaturedOnly bool   `json:"featured_only"`
}

// VendorRepository defines vendor storage.
type VendorRepository interface {
	Create(ctx context.Context, vendor *Vendor) error
	GetByID(ctx context.Context, id string) (*Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]*Vendor, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Vendor, error)
	Update(ctx context.Context, id string, patch VendorPatch) (*Vendor, error)
	SetFlags(ctx context.Context, id string, approved, featured *bool) (*Vendor, error)
	SetRating(ctx context.Context, id string, rating float64, reviewCount int) error
	Delete(ctx context.Context, id string) error
	CountPendingApproval(ctx context.Context) (int, error)
}

// VendorService manages vendor profiles and the vendor directory.
type VendorService interface {
	ListVendors(ctx context.Context, filter VendorFilter) ([]*Vendor, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)
	CreateProfile(ctx context.Context, actor Actor, vendor *Vendor) error
	UpdateProfile(ctx context.Context, actor Actor, id string, patch VendorPatch) (*Vendor, error)
	DeleteVendor(ctx context.Context, actor Actor, id string) error
	SetApproval(ctx context.Context, actor Actor, id string, approved bool) (*Vendor, error)
	SetFeatured(ctx context.Context, actor Actor, id string, featured bool) (*Vendor, error)
	// InvalidateDirectory drops cached directory listings after a vendor changes.
	InvalidateDirectory(ctx context.Context)
}
