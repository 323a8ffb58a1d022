package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23503"
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// updateBuilder collects SET clauses for a partial UPDATE. updated_at is always bumped.
type updateBuilder struct {
	setClauses []string
	args       []any
	changed    bool
}

func newUpdateBuilder() *updateBuilder {
	return &updateBuilder{setClauses: []string{"updated_at = NOW()"}}
}

func (b *updateBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.setClauses = append(b.setClauses, fmt.Sprintf("%s = $%d", column, len(b.args)))
	b.changed = true
}

func (b *updateBuilder) setRaw(clause string) {
	b.setClauses = append(b.setClauses, clause)
	b.changed = true
}

// build returns the UPDATE statement and its args; the id is the final argument.
func (b *updateBuilder) build(table, id, returning string) (string, []any) {
	args := append(b.args, id)
	query := fmt.Sprintf(`
		UPDATE %s SET %s
		WHERE id = $%d
		RETURNING %s
	`, table, strings.Join(b.setClauses, ", "), len(args), returning)
	return query, args
}

func deleteByID(ctx context.Context, db *sql.DB, table, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func countRows(ctx context.Context, db *sql.DB, table string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
