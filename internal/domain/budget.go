package domain

import (
	"context"
	"time"
)

// BudgetItem is one spending category of an event. Remaining is stored and may drift from Budgeted-Spent.
// swagger:model BudgetItem
type BudgetItem struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Category  string    `json:"category"`
	Budgeted  float64   `json:"budgeted"`
	Spent     float64   `json:"spent"`
	Remaining float64   `json:"remaining"`
	Vendors   []string  `json:"vendors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetItemPatch holds optional budget item fields.
type BudgetItemPatch struct {
	Category  *string   `json:"category"`
	Budgeted  *float64  `json:"budgeted"`
	Spent     *float64  `json:"spent"`
	Remaining *float64  `json:"-"`
	Vendors   *[]string `json:"vendors"`
}

// BudgetSummary aggregates all budget items of an event.
type BudgetSummary struct {
	TotalBudgeted  float64 `json:"total_budgeted"`
	TotalSpent     float64 `json:"total_spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed int     `json:"percentage_used"`
	IsOverBudget   bool    `json:"is_over_budget"`
}

// AlertType grades a budget alert.
type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

// BudgetAlert flags a budget item close to or over its allocation.
type BudgetAlert struct {
	ItemID     string    `json:"item_id"`
	Category   string    `json:"category"`
	Type       AlertType `json:"type"`
	Percentage float64   `json:"percentage"`
	Message    string    `json:"message"`
}

// BudgetRepository defines budget item storage.
type BudgetRepository interface {
	Create(ctx context.Context, item *BudgetItem) error
	GetByID(ctx context.Context, id string) (*BudgetItem, error)
	ListByEvent(ctx context.Context, eventID string) ([]*BudgetItem, error)
	Update(ctx context.Context, id string, patch BudgetItemPatch) (*BudgetItem, error)
	Delete(ctx context.Context, id string) error
}

// BudgetService manages budget items and their aggregates.
type BudgetService interface {
	ListItems(ctx context.Context, actor Actor, eventID string) ([]*BudgetItem, error)
	CreateItem(ctx context.Context, actor Actor, item *BudgetItem) error
	UpdateItem(ctx context.Context, actor Actor, id string, patch BudgetItemPatch) (*BudgetItem, error)
	DeleteItem(ctx context.Context, actor Actor, id string) error
	Summary(ctx context.Context, actor Actor, eventID string) (BudgetSummary, error)
	Alerts(ctx context.Context, actor Actor, eventID string) ([]BudgetAlert, error)
}
