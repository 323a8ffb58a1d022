package postgres

import (
	"context"
	"database/sql"

	"weddingplanner/internal/domain"
)

const guestColumns = `id, event_id, name, email, phone, rsvp_status, plus_one, plus_one_name, dietary_restrictions, notes, table_number, created_at, updated_at`

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func scanGuest(s rowScanner) (*domain.Guest, error) {
	g := &domain.Guest{}
	var table sql.NullInt64
	err := s.Scan(
		&g.ID, &g.EventID, &g.Name, &g.Email, &g.Phone, &g.RSVPStatus, &g.PlusOne, &g.PlusOneName,
		&g.DietaryRestrictions, &g.Notes, &table, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if table.Valid {
		n := int(table.Int64)
		g.TableNumber = &n
	}
	return g, nil
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (event_id, name, email, phone, rsvp_status, plus_one, plus_one_name, dietary_restrictions, notes, table_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		g.EventID, g.Name, g.Email, g.Phone, g.RSVPStatus, g.PlusOne, g.PlusOneName,
		g.DietaryRestrictions, g.Notes, nullInt(g.TableNumber), g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	g, err := scanGuest(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *guestRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	query := `
		SELECT ` + guestColumns + `
		FROM guests
		WHERE event_id = $1
		ORDER BY name ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Update(ctx context.Context, id string, patch domain.GuestPatch) (*domain.Guest, error) {
	b := newUpdateBuilder()
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Email != nil {
		b.set("email", *patch.Email)
	}
	if patch.Phone != nil {
		b.set("phone", *patch.Phone)
	}
	if patch.RSVPStatus != nil {
		b.set("rsvp_status", *patch.RSVPStatus)
	}
	if patch.PlusOne != nil {
		b.set("plus_one", *patch.PlusOne)
	}
	if patch.PlusOneName != nil {
		b.set("plus_one_name", *patch.PlusOneName)
	}
	if patch.DietaryRestrictions != nil {
		b.set("dietary_restrictions", *patch.DietaryRestrictions)
	}
	if patch.Notes != nil {
		b.set("notes", *patch.Notes)
	}
	switch {
	case patch.ClearTable:
		b.setRaw("table_number = NULL")
	case patch.TableNumber != nil:
		b.set("table_number", *patch.TableNumber)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("guests", id, guestColumns)
	g, err := scanGuest(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *guestRepository) ClearTablesByEvent(ctx context.Context, eventID string) (int, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE guests SET table_number = NULL, updated_at = NOW()
		WHERE event_id = $1 AND table_number IS NOT NULL
	`, eventID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (r *guestRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "guests", id)
}
