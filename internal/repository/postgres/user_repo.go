package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"weddingplanner/internal/domain"
)

const userColumns = `id, name, email, role, is_approved, created_at, updated_at`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(s rowScanner) (*domain.User, error) {
	u := &domain.User{}
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsApproved, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Persisted = true
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, role, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Role, u.IsApproved, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	u.Persisted = true
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	b := newUpdateBuilder()
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Email != nil {
		b.set("email", *patch.Email)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("users", id, userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetApproval(ctx context.Context, id string, approved bool) (*domain.User, error) {
	query := `
		UPDATE users SET is_approved = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, approved, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns one page of users, newest first, and the total matching count.
func (r *userRepository) List(ctx context.Context, filter domain.UserFilter, page domain.PaginationParams) ([]*domain.User, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.IsApproved != nil {
		args = append(args, *filter.IsApproved)
		where = append(where, fmt.Sprintf("is_approved = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.PageSize, page.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, userColumns, cond, len(args)-1, len(args))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[domain.Role]int)
	for rows.Next() {
		var role domain.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}
