package domain

import "context"

// EventOverview bundles everything the couple dashboard shows for one event.
type EventOverview struct {
	Event         *Event              `json:"event"`
	Tasks         []*Task             `json:"tasks"`
	TaskStats     TaskStats           `json:"task_stats"`
	Guests        []*Guest            `json:"guests"`
	RSVPStats     RSVPStats           `json:"rsvp_stats"`
	BudgetItems   []*BudgetItem       `json:"budget_items"`
	BudgetSummary BudgetSummary       `json:"budget_summary"`
	BudgetAlerts  []BudgetAlert       `json:"budget_alerts"`
	Registry      []*GiftRegistryItem `json:"registry"`
	Bookings      []*Booking          `json:"bookings"`
}

// CoupleDashboard is the couple's home view.
type CoupleDashboard struct {
	Events   []*Event       `json:"events"`
	Selected *EventOverview `json:"selected"`
}

// VendorDashboard is the vendor's home view.
type VendorDashboard struct {
	Vendor         *Vendor    `json:"vendor"`
	Bookings       []*Booking `json:"bookings"`
	Reviews        []*Review  `json:"reviews"`
	UnreadMessages int        `json:"unread_messages"`
}

// GuestDashboard is the guest's home view.
type GuestDashboard struct {
	PublicEvents    []*Event  `json:"public_events"`
	FavoriteVendors []*Vendor `json:"favorite_vendors"`
	UnreadMessages  int       `json:"unread_messages"`
}

// AdminDashboard is the admin's home view.
type AdminDashboard struct {
	Stats             PlatformStats `json:"stats"`
	UnapprovedVendors []*Vendor     `json:"unapproved_vendors"`
	RecentUsers       []*User       `json:"recent_users"`
}

// GeneralDashboard is shown to visitors without a planning role.
type GeneralDashboard struct {
	PublicEvents    []*Event  `json:"public_events"`
	FeaturedVendors []*Vendor `json:"featured_vendors"`
}

// DashboardService composes per-role views from the other services.
type DashboardService interface {
	Couple(ctx context.Context, actor Actor, eventID string) (*CoupleDashboard, error)
	Vendor(ctx context.Context, actor Actor) (*VendorDashboard, error)
	Guest(ctx context.Context, actor Actor) (*GuestDashboard, error)
	Admin(ctx context.Context, actor Actor) (*AdminDashboard, error)
	General(ctx context.Context) (*GeneralDashboard, error)
}
