package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"weddingplanner/internal/domain"
)

const seatingColumns = `id, event_id, name, layout, tables, created_at, updated_at`

type seatingRepository struct {
	DB *sql.DB
}

func NewSeatingRepository(db *sql.DB) domain.SeatingRepository {
	return &seatingRepository{DB: db}
}

func scanSeatingPlan(s rowScanner) (*domain.SeatingPlan, error) {
	p := &domain.SeatingPlan{}
	var tables []byte
	if err := s.Scan(&p.ID, &p.EventID, &p.Name, &p.Layout, &tables, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Tables = []domain.Table{}
	if len(tables) > 0 {
		if err := json.Unmarshal(tables, &p.Tables); err != nil {
			return nil, fmt.Errorf("decode tables: %w", err)
		}
	}
	return p, nil
}

// encodeTables returns the JSONB text for tables. lib/pq sends []byte as bytea, so the value is a string.
func encodeTables(tables []domain.Table) (string, error) {
	if tables == nil {
		tables = []domain.Table{}
	}
	raw, err := json.Marshal(tables)
	return string(raw), err
}

func (r *seatingRepository) Create(ctx context.Context, p *domain.SeatingPlan) error {
	tables, err := encodeTables(p.Tables)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO seating_plans (event_id, name, layout, tables, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.EventID, p.Name, p.Layout, tables, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
}

func (r *seatingRepository) GetByID(ctx context.Context, id string) (*domain.SeatingPlan, error) {
	query := `SELECT ` + seatingColumns + ` FROM seating_plans WHERE id = $1`
	p, err := scanSeatingPlan(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *seatingRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.SeatingPlan, error) {
	query := `
		SELECT ` + seatingColumns + `
		FROM seating_plans
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plans := make([]*domain.SeatingPlan, 0)
	for rows.Next() {
		p, err := scanSeatingPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *seatingRepository) Update(ctx context.Context, id string, patch domain.SeatingPlanPatch) (*domain.SeatingPlan, error) {
	b := newUpdateBuilder()
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Layout != nil {
		b.set("layout", *patch.Layout)
	}
	if patch.Tables != nil {
		tables, err := encodeTables(*patch.Tables)
		if err != nil {
			return nil, err
		}
		b.set("tables", tables)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("seating_plans", id, seatingColumns)
	p, err := scanSeatingPlan(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *seatingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "seating_plans", id)
}
