package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"weddingplanner/internal/domain"
)

const bookingColumns = `id, event_id, vendor_id, couple_id, service, date, amount, status, notes, created_at, updated_at`

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{DB: db}
}

func scanBooking(s rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var date sql.NullTime
	if err := s.Scan(&b.ID, &b.EventID, &b.VendorID, &b.CoupleID, &b.Service, &date, &b.Amount, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Date = timePtr(date)
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (event_id, vendor_id, couple_id, service, date, amount, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		b.EventID, b.VendorID, b.CoupleID, b.Service, nullTime(b.Date), b.Amount, b.Status, b.Notes, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown event or vendor", domain.ErrInvalidInput)
	}
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *bookingRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	return r.listBy(ctx, "event_id", eventID)
}

func (r *bookingRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Booking, error) {
	return r.listBy(ctx, "vendor_id", vendorID)
}

func (r *bookingRepository) ListByCouple(ctx context.Context, coupleID string) ([]*domain.Booking, error) {
	return r.listBy(ctx, "couple_id", coupleID)
}

func (r *bookingRepository) listBy(ctx context.Context, column, id string) ([]*domain.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE %s = $1
		ORDER BY date ASC NULLS LAST, created_at ASC
	`, bookingColumns, column)
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) HasCompleted(ctx context.Context, vendorID, coupleID string) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vendor_id = $1 AND couple_id = $2 AND status = $3
		)
	`, vendorID, coupleID, domain.BookingCompleted).Scan(&ok)
	return ok, err
}

func (r *bookingRepository) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	b := newUpdateBuilder()
	if patch.Service != nil {
		b.set("service", *patch.Service)
	}
	if patch.Date != nil {
		b.set("date", *patch.Date)
	}
	if patch.Amount != nil {
		b.set("amount", *patch.Amount)
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.Notes != nil {
		b.set("notes", *patch.Notes)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("bookings", id, bookingColumns)
	booking, err := scanBooking(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "bookings", id)
}

func (r *bookingRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, "bookings")
}
