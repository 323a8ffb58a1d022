package domain

import (
	"context"
	"time"
)

// TablePosition places a table on the layout canvas.
type TablePosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Table is one entry of a seating plan's denormalized tables array.
type Table struct {
	Number   int           `json:"number"`
	Seats    int           `json:"seats"`
	Shape    string        `json:"shape"`
	Position TablePosition `json:"position"`
}

// SeatingPlan is a layout of tables for an event. Guest-to-table links live on Guest.TableNumber.
// swagger:model SeatingPlan
type SeatingPlan struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Layout    string    `json:"layout"`
	Tables    []Table   `json:"tables"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeatingPlanPatch holds optional seating plan fields.
type SeatingPlanPatch struct {
	Name   *string  `json:"name"`
	Layout *string  `json:"layout"`
	Tables *[]Table `json:"tables"`
}

// SeatAssignment is one guest placed by auto-assign.
type SeatAssignment struct {
	GuestID     string `json:"guest_id"`
	TableNumber int    `json:"table_number"`
	Seats       int    `json:"seats"`
}

// AutoAssignResult reports what an auto-assign pass did.
type AutoAssignResult struct {
	Assigned   []SeatAssignment `json:"assigned"`
	Unassigned []string         `json:"unassigned"`
}

// SeatingRepository defines seating plan storage.
type SeatingRepository interface {
	Create(ctx context.Context, plan *SeatingPlan) error
	GetByID(ctx context.Context, id string) (*SeatingPlan, error)
	ListByEvent(ctx context.Context, eventID string) ([]*SeatingPlan, error)
	Update(ctx context.Context, id string, patch SeatingPlanPatch) (*SeatingPlan, error)
	Delete(ctx context.Context, id string) error
}

// SeatingService manages seating plans and guest placement.
type SeatingService interface {
	ListPlans(ctx context.Context, actor Actor, eventID string) ([]*SeatingPlan, error)
	GetPlan(ctx context.Context, actor Actor, id string) (*SeatingPlan, error)
	CreatePlan(ctx context.Context, actor Actor, plan *SeatingPlan) error
	UpdatePlan(ctx context.Context, actor Actor, id string, patch SeatingPlanPatch) (*SeatingPlan, error)
	DeletePlan(ctx context.Context, actor Actor, id string) error
	AutoAssign(ctx context.Context, actor Actor, planID string) (*AutoAssignResult, error)
	AssignGuest(ctx context.Context, actor Actor, guestID string, tableNumber *int) (*Guest, error)
	ClearAssignments(ctx context.Context, actor Actor, eventID string) (int, error)
}
