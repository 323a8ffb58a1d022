package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

const giftColumns = `id, event_id, name, description, url, price, quantity, purchased, created_at, updated_at`

type giftRegistryRepository struct {
	DB *sql.DB
}

func NewGiftRegistryRepository(db *sql.DB) domain.GiftRegistryRepository {
	return &giftRegistryRepository{DB: db}
}

func scanGift(s rowScanner) (*domain.GiftRegistryItem, error) {
	g := &domain.GiftRegistryItem{}
	if err := s.Scan(&g.ID, &g.EventID, &g.Name, &g.Description, &g.URL, &g.Price, &g.Quantity, &g.Purchased, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *giftRegistryRepository) Create(ctx context.Context, g *domain.GiftRegistryItem) error {
	query := `
		INSERT INTO gift_registry (event_id, name, description, url, price, quantity, purchased, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		g.EventID, g.Name, g.Description, g.URL, g.Price, g.Quantity, g.Purchased, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
}

func (r *giftRegistryRepository) GetByID(ctx context.Context, id string) (*domain.GiftRegistryItem, error) {
	query := `SELECT ` + giftColumns + ` FROM gift_registry WHERE id = $1`
	g, err := scanGift(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *giftRegistryRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.GiftRegistryItem, error) {
	query := `
		SELECT ` + giftColumns + `
		FROM gift_registry
		WHERE event_id = $1
		ORDER BY name ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.GiftRegistryItem, 0)
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *giftRegistryRepository) Update(ctx context.Context, id string, patch domain.GiftRegistryPatch) (*domain.GiftRegistryItem, error) {
	b := newUpdateBuilder()
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.URL != nil {
		b.set("url", *patch.URL)
	}
	if patch.Price != nil {
		b.set("price", *patch.Price)
	}
	if patch.Quantity != nil {
		b.set("quantity", *patch.Quantity)
	}
	if patch.Purchased != nil {
		b.set("purchased", *patch.Purchased)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("gift_registry", id, giftColumns)
	g, err := scanGift(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

// IncrementPurchased adds n to purchased unless that would exceed quantity, in which case it returns ErrInvalidInput.
func (r *giftRegistryRepository) IncrementPurchased(ctx context.Context, id string, n int) (*domain.GiftRegistryItem, error) {
	query := `
		UPDATE gift_registry SET purchased = purchased + $1, updated_at = NOW()
		WHERE id = $2 AND purchased + $1 <= quantity
		RETURNING ` + giftColumns
	g, err := scanGift(r.DB.QueryRowContext(ctx, query, n, id))
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrInvalidInput
}

func (r *giftRegistryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "gift_registry", id)
}
