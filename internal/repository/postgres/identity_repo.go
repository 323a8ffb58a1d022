package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type identityRepository struct {
	DB *sql.DB
}

func NewIdentityRepository(db *sql.DB) domain.IdentityRepository {
	return &identityRepository{DB: db}
}

func (r *identityRepository) Create(ctx context.Context, i *domain.Identity) error {
	query := `
		INSERT INTO auth_identities (email, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, i.Email, i.PasswordHash, i.Salt, i.CreatedAt).Scan(&i.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `
		SELECT id, email, password_hash, salt, created_at
		FROM auth_identities
		WHERE email = $1
	`
	return r.get(ctx, query, email)
}

func (r *identityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	query := `
		SELECT id, email, password_hash, salt, created_at
		FROM auth_identities
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

func (r *identityRepository) get(ctx context.Context, query string, arg string) (*domain.Identity, error) {
	i := &domain.Identity{}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&i.ID, &i.Email, &i.PasswordHash, &i.Salt, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return i, nil
}
