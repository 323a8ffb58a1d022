package postgres

import (
	"context"
	"database/sql"

	"weddingplanner/internal/domain"
)

type favoriteRepository struct {
	DB *sql.DB
}

func NewFavoriteRepository(db *sql.DB) domain.FavoriteRepository {
	return &favoriteRepository{DB: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, vendorID string) error {
	query := `
		INSERT INTO favorites (user_id, vendor_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, vendor_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, vendorID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, vendorID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND vendor_id = $2`, userID, vendorID)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, vendorID string) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND vendor_id = $2)`, userID, vendorID).Scan(&ok)
	return ok, err
}

func (r *favoriteRepository) ListVendorIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT vendor_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
