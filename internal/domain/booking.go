package domain

import (
	"context"
	"time"
)

// BookingStatus is the state of a vendor booking. Any valid status may follow any other.
type BookingStatus string

const (
	BookingInquiry   BookingStatus = "inquiry"
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingInquiry, BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking links an event, a vendor and the couple who requested the service.
// swagger:model Booking
type Booking struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	VendorID  string        `json:"vendor_id"`
	CoupleID  string        `json:"couple_id"`
	Service   string        `json:"service"`
	Date      *time.Time    `json:"date"`
	Amount    float64       `json:"amount"`
	Status    BookingStatus `json:"status"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BookingPatch holds optional booking fields.
type BookingPatch struct {
	Service *string        `json:"service"`
	Date    *time.Time     `json:"date"`
	Amount  *float64       `json:"amount"`
	Status  *BookingStatus `json:"status"`
	Notes   *string        `json:"notes"`
}

// BookingRepository defines booking storage.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Booking, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*Booking, error)
	ListByCouple(ctx context.Context, coupleID string) ([]*Booking, error)
	HasCompleted(ctx context.Context, vendorID, coupleID string) (bool, error)
	Update(ctx context.Context, id string, patch BookingPatch) (*Booking, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookingService manages vendor bookings.
type BookingService interface {
	ListByEvent(ctx context.Context, actor Actor, eventID string) ([]*Booking, error)
	ListByVendor(ctx context.Context, actor Actor, vendorID string) ([]*Booking, error)
	ListMine(ctx context.Context, actor Actor) ([]*Booking, error)
	CreateBooking(ctx context.Context, actor Actor, booking *Booking) error
	UpdateBooking(ctx context.Context, actor Actor, id string, patch BookingPatch) (*Booking, error)
	DeleteBooking(ctx context.Context, actor Actor, id string) error
}
