package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

const budgetColumns = `id, event_id, category, budgeted, spent, remaining, vendors, created_at, updated_at`

type budgetRepository struct {
	DB *sql.DB
}

func NewBudgetRepository(db *sql.DB) domain.BudgetRepository {
	return &budgetRepository{DB: db}
}

func scanBudgetItem(s rowScanner) (*domain.BudgetItem, error) {
	b := &domain.BudgetItem{}
	var vendors pq.StringArray
	if err := s.Scan(&b.ID, &b.EventID, &b.Category, &b.Budgeted, &b.Spent, &b.Remaining, &vendors, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Vendors = []string(vendors)
	if b.Vendors == nil {
		b.Vendors = []string{}
	}
	return b, nil
}

func (r *budgetRepository) Create(ctx context.Context, b *domain.BudgetItem) error {
	query := `
		INSERT INTO budget_items (event_id, category, budgeted, spent, remaining, vendors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		b.EventID, b.Category, b.Budgeted, b.Spent, b.Remaining, pq.Array(b.Vendors), b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*domain.BudgetItem, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_items WHERE id = $1`
	b, err := scanBudgetItem(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *budgetRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.BudgetItem, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budget_items
		WHERE event_id = $1
		ORDER BY category ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.BudgetItem, 0)
	for rows.Next() {
		b, err := scanBudgetItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// Update writes remaining only when the caller supplies it.
func (r *budgetRepository) Update(ctx context.Context, id string, patch domain.BudgetItemPatch) (*domain.BudgetItem, error) {
	b := newUpdateBuilder()
	if patch.Category != nil {
		b.set("category", *patch.Category)
	}
	if patch.Budgeted != nil {
		b.set("budgeted", *patch.Budgeted)
	}
	if patch.Spent != nil {
		b.set("spent", *patch.Spent)
	}
	if patch.Remaining != nil {
		b.set("remaining", *patch.Remaining)
	}
	if patch.Vendors != nil {
		b.set("vendors", pq.Array(*patch.Vendors))
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("budget_items", id, budgetColumns)
	item, err := scanBudgetItem(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *budgetRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "budget_items", id)
}
