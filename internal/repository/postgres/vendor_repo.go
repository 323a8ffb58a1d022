package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

const vendorColumns = `id, name, category, description, location, email, phone, website, rating, review_count, starting_price, services, is_approved, is_featured, created_at, updated_at`

type vendorRepository struct {
	DB *sql.DB
}

func NewVendorRepository(db *sql.DB) domain.VendorRepository {
	return &vendorRepository{DB: db}
}

func scanVendor(s rowScanner) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	var services pq.StringArray
	err := s.Scan(
		&v.ID, &v.Name, &v.Category, &v.Description, &v.Location, &v.Email, &v.Phone, &v.Website,
		&v.Rating, &v.ReviewCount, &v.StartingPrice, &services, &v.IsApproved, &v.IsFeatured, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Services = []string(services)
	if v.Services == nil {
		v.Services = []string{}
	}
	return v, nil
}

func (r *vendorRepository) Create(ctx context.Context, v *domain.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, category, description, location, email, phone, website, rating, review_count, starting_price, services, is_approved, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.DB.ExecContext(ctx, query,
		v.ID, v.Name, v.Category, v.Description, v.Location, v.Email, v.Phone, v.Website,
		v.Rating, v.ReviewCount, v.StartingPrice, pq.Array(v.Services), v.IsApproved, v.IsFeatured, v.CreatedAt, v.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: vendor must belong to an existing user", domain.ErrInvalidInput)
	}
	return err
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	v, err := scanVendor(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

// List returns vendors best-rated first.
func (r *vendorRepository) List(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	where := []string{"TRUE"}
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("LOWER(category) = LOWER($%d)", len(args)))
	}
	if filter.ApprovedOnly {
		where = append(where, "is_approved")
	}
	if filter.FeaturedOnly {
		where = append(where, "is_featured")
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM vendors
		WHERE %s
		ORDER BY rating DESC, review_count DESC, name ASC
	`, vendorColumns, strings.Join(where, " AND "))
	return r.list(ctx, query, args...)
}

func (r *vendorRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE id = ANY($1)
		ORDER BY name ASC
	`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *vendorRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Vendor, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	vendors := make([]*domain.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *vendorRepository) Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	b := newUpdateBuilder()
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Category != nil {
		b.set("category", *patch.Category)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Location != nil {
		b.set("location", *patch.Location)
	}
	if patch.Email != nil {
		b.set("email", *patch.Email)
	}
	if patch.Phone != nil {
		b.set("phone", *patch.Phone)
	}
	if patch.Website != nil {
		b.set("website", *patch.Website)
	}
	if patch.StartingPrice != nil {
		b.set("starting_price", *patch.StartingPrice)
	}
	if patch.Services != nil {
		b.set("services", pq.Array(*patch.Services))
	}
	return r.apply(ctx, id, b)
}

func (r *vendorRepository) SetFlags(ctx context.Context, id string, approved, featured *bool) (*domain.Vendor, error) {
	b := newUpdateBuilder()
	if approved != nil {
		b.set("is_approved", *approved)
	}
	if featured != nil {
		b.set("is_featured", *featured)
	}
	return r.apply(ctx, id, b)
}

func (r *vendorRepository) apply(ctx context.Context, id string, b *updateBuilder) (*domain.Vendor, error) {
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("vendors", id, vendorColumns)
	v, err := scanVendor(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *vendorRepository) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE vendors SET rating = $1, review_count = $2, updated_at = NOW()
		WHERE id = $3
	`, rating, reviewCount, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vendorRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "vendors", id)
}

func (r *vendorRepository) CountPendingApproval(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vendors WHERE NOT is_approved`).Scan(&n)
	return n, err
}
