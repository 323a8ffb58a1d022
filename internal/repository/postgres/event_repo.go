package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

const eventColumns = `id, title, description, date, venue, couple_names, guest_count, budget, spent, progress, is_public, status, created_by, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var date sql.NullTime
	var coupleNames pq.StringArray
	err := s.Scan(
		&e.ID, &e.Title, &e.Description, &date, &e.Venue, &coupleNames, &e.GuestCount,
		&e.Budget, &e.Spent, &e.Progress, &e.IsPublic, &e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Date = timePtr(date)
	e.CoupleNames = []string(coupleNames)
	if e.CoupleNames == nil {
		e.CoupleNames = []string{}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, venue, couple_names, guest_count, budget, spent, progress, is_public, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, nullTime(e.Date), e.Venue, pq.Array(e.CoupleNames), e.GuestCount,
		e.Budget, e.Spent, e.Progress, e.IsPublic, e.Status, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE created_by = $1
		ORDER BY date ASC NULLS LAST, created_at ASC
	`
	return r.list(ctx, query, ownerID)
}

func (r *eventRepository) ListPublic(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_public
		ORDER BY date ASC NULLS LAST, created_at ASC
	`
	return r.list(ctx, query)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	b := newUpdateBuilder()
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Date != nil {
		b.set("date", *patch.Date)
	}
	if patch.Venue != nil {
		b.set("venue", *patch.Venue)
	}
	if patch.CoupleNames != nil {
		b.set("couple_names", pq.Array(*patch.CoupleNames))
	}
	if patch.GuestCount != nil {
		b.set("guest_count", *patch.GuestCount)
	}
	if patch.Budget != nil {
		b.set("budget", *patch.Budget)
	}
	if patch.Spent != nil {
		b.set("spent", *patch.Spent)
	}
	if patch.IsPublic != nil {
		b.set("is_public", *patch.IsPublic)
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("events", id, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *eventRepository) SetProgress(ctx context.Context, id string, progress int) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE events SET progress = $1, updated_at = NOW() WHERE id = $2`, progress, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "events", id)
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, "events")
}
