package domain

import (
	"context"
	"time"
)

// EventStatus is the planning state of an event.
type EventStatus string

const (
	EventStatusPlanning  EventStatus = "planning"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPlanning, EventStatusConfirmed, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a wedding (or related celebration) owned by the user in CreatedBy.
// Spent and Budget are tracked independently; Progress caches the task completion rate.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        *time.Time  `json:"date"`
	Venue       string      `json:"venue"`
	CoupleNames []string    `json:"couple_names"`
	GuestCount  int         `json:"guest_count"`
	Budget      float64     `json:"budget"`
	Spent       float64     `json:"spent"`
	Progress    int         `json:"progress"`
	IsPublic    bool        `json:"is_public"`
	Status      EventStatus `json:"status"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// EventPatch holds optional event fields; nil fields are left unchanged.
type EventPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Date        *time.Time   `json:"date"`
	Venue       *string      `json:"venue"`
	CoupleNames *[]string    `json:"couple_names"`
	GuestCount  *int         `json:"guest_count"`
	Budget      *float64     `json:"budget"`
	Spent       *float64     `json:"spent"`
	IsPublic    *bool        `json:"is_public"`
	Status      *EventStatus `json:"status"`
}

// EventRepository defines event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	ListPublic(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	SetProgress(ctx context.Context, id string, progress int) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// EventService manages events.
type EventService interface {
	CreateEvent(ctx context.Context, actor Actor, event *Event) error
	GetEvent(ctx context.Context, actor Actor, id string) (*Event, error)
	ListMyEvents(ctx context.Context, actor Actor) ([]*Event, error)
	ListPublicEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, actor Actor, id string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, actor Actor, id string) error
	RecomputeProgress(ctx context.Context, eventID string) (int, error)
}
