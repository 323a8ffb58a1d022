package postgres

import (
	"context"
	"database/sql"

	"weddingplanner/internal/domain"
)

const reviewColumns = `id, vendor_id, user_id, rating, comment, is_verified, created_at, updated_at`

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{DB: db}
}

func scanReview(s rowScanner) (*domain.Review, error) {
	rv := &domain.Review{}
	if err := s.Scan(&rv.ID, &rv.VendorID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.IsVerified, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (vendor_id, user_id, rating, comment, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rv.VendorID, rv.UserID, rv.Rating, rv.Comment, rv.IsVerified, rv.CreatedAt, rv.UpdatedAt).Scan(&rv.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

func (r *reviewRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Review, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`, vendorID)
}

func (r *reviewRepository) ListVerifiedByVendor(ctx context.Context, vendorID string) ([]*domain.Review, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE vendor_id = $1 AND is_verified
		ORDER BY created_at DESC
	`, vendorID)
}

func (r *reviewRepository) list(ctx context.Context, query, vendorID string) ([]*domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) SetVerified(ctx context.Context, id string, verified bool) (*domain.Review, error) {
	query := `
		UPDATE reviews SET is_verified = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + reviewColumns
	rv, err := scanReview(r.DB.QueryRowContext(ctx, query, verified, id))
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "reviews", id)
}
