package domain

import (
	"context"
	"time"
)

// RSVPStatus is a guest's response to an invitation.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPAttending RSVPStatus = "attending"
	RSVPDeclined  RSVPStatus = "declined"
)

// Valid reports whether s is a known RSVP status.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPAttending, RSVPDeclined:
		return true
	}
	return false
}

// Guest is an invitee of one event. TableNumber stays nil until the guest is seated.
// swagger:model Guest
type Guest struct {
	ID                  string     `json:"id"`
	EventID             string     `json:"event_id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	RSVPStatus          RSVPStatus `json:"rsvp_status"`
	PlusOne             bool       `json:"plus_one"`
	PlusOneName         string     `json:"plus_one_name"`
	DietaryRestrictions string     `json:"dietary_restrictions"`
	Notes               string     `json:"notes"`
	TableNumber         *int       `json:"table_number"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// HasNamedPlusOne reports whether the guest brings a plus-one whose name is known.
func (g *Guest) HasNamedPlusOne() bool {
	return g.PlusOne && g.PlusOneName != ""
}

// GuestPatch holds optional guest fields. ClearTable unsets the table assignment.
type GuestPatch struct {
	Name                *string     `json:"name"`
	Email               *string     `json:"email"`
	Phone               *string     `json:"phone"`
	RSVPStatus          *RSVPStatus `json:"rsvp_status"`
	PlusOne             *bool       `json:"plus_one"`
	PlusOneName         *string     `json:"plus_one_name"`
	DietaryRestrictions *string     `json:"dietary_restrictions"`
	Notes               *string     `json:"notes"`
	TableNumber         *int        `json:"table_number"`
	ClearTable          bool        `json:"clear_table"`
}

// RSVPStats summarizes guest responses for an event.
type RSVPStats struct {
	Total          int `json:"total"`
	Attending      int `json:"attending"`
	Declined       int `json:"declined"`
	Pending        int `json:"pending"`
	PlusOnes       int `json:"plus_ones"`
	TotalAttending int `json:"total_attending"`
	ResponseRate   int `json:"response_rate"`
}

// GuestRepository defines guest storage.
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id string) (*Guest, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Guest, error)
	Update(ctx context.Context, id string, patch GuestPatch) (*Guest, error)
	ClearTablesByEvent(ctx context.Context, eventID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// GuestService manages guest lists and RSVPs.
type GuestService interface {
	ListGuests(ctx context.Context, actor Actor, eventID string) ([]*Guest, error)
	CreateGuest(ctx context.Context, actor Actor, guest *Guest) error
	UpdateGuest(ctx context.Context, actor Actor, id string, patch GuestPatch) (*Guest, error)
	RespondRSVP(ctx context.Context, actor Actor, id string, status RSVPStatus, plusOne *bool, plusOneName *string) (*Guest, error)
	DeleteGuest(ctx context.Context, actor Actor, id string) error
	RSVPStats(ctx context.Context, actor Actor, eventID string) (RSVPStats, error)
}
