package domain

import (
	"context"
	"time"
)

// GiftRegistryItem is a wished-for gift. Purchased is expected to stay within Quantity.
// swagger:model GiftRegistryItem
type GiftRegistryItem struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Purchased   int       `json:"purchased"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GiftRegistryPatch holds optional registry item fields.
type GiftRegistryPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	URL         *string  `json:"url"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Purchased   *int     `json:"purchased"`
}

// GiftRegistryRepository defines registry storage.
type GiftRegistryRepository interface {
	Create(ctx context.Context, item *GiftRegistryItem) error
	GetByID(ctx context.Context, id string) (*GiftRegistryItem, error)
	ListByEvent(ctx context.Context, eventID string) ([]*GiftRegistryItem, error)
	Update(ctx context.Context, id string, patch GiftRegistryPatch) (*GiftRegistryItem, error)
	IncrementPurchased(ctx context.Context, id string, n int) (*GiftRegistryItem, error)
	Delete(ctx context.Context, id string) error
}

// GiftRegistryService manages an event's registry. Public events expose their registry to any signed-in user.
type GiftRegistryService interface {
	ListItems(ctx context.Context, actor Actor, eventID string) ([]*GiftRegistryItem, error)
	CreateItem(ctx context.Context, actor Actor, item *GiftRegistryItem) error
	UpdateItem(ctx context.Context, actor Actor, id string, patch GiftRegistryPatch) (*GiftRegistryItem, error)
	Purchase(ctx context.Context, actor Actor, id string, n int) (*GiftRegistryItem, error)
	DeleteItem(ctx context.Context, actor Actor, id string) error
}
