package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

const taskColumns = `id, event_id, title, description, due_date, assignee, completed, completed_at, priority, category, created_at, updated_at`

type taskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{DB: db}
}

func scanTask(s rowScanner, extra ...any) (*domain.Task, error) {
	t := &domain.Task{}
	var due, completedAt sql.NullTime
	dest := []any{
		&t.ID, &t.EventID, &t.Title, &t.Description, &due, &t.Assignee,
		&t.Completed, &completedAt, &t.Priority, &t.Category, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	t.DueDate = timePtr(due)
	t.CompletedAt = timePtr(completedAt)
	return t, nil
}

func (r *taskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `
		INSERT INTO tasks (event_id, title, description, due_date, assignee, completed, completed_at, priority, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		t.EventID, t.Title, t.Description, nullTime(t.DueDate), t.Assignee, t.Completed,
		nullTime(t.CompletedAt), t.Priority, t.Category, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	t, err := scanTask(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *taskRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE event_id = $1
		ORDER BY due_date ASC NULLS LAST, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListDueBetween returns incomplete, not yet reminded tasks due in [from, to) with their event and owner.
func (r *taskRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error) {
	query := `
		SELECT t.id, t.event_id, t.title, t.description, t.due_date, t.assignee, t.completed, t.completed_at,
			t.priority, t.category, t.created_at, t.updated_at,
			e.title, u.id, u.name, u.email
		FROM tasks t
		JOIN events e ON e.id = t.event_id
		JOIN users u ON u.id = e.created_by
		WHERE NOT t.completed AND t.reminded_at IS NULL AND t.due_date >= $1 AND t.due_date < $2
		ORDER BY u.id, t.due_date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	due := make([]*domain.DueTask, 0)
	for rows.Next() {
		d := &domain.DueTask{}
		t, err := scanTask(rows, &d.EventTitle, &d.OwnerID, &d.OwnerName, &d.OwnerEmail)
		if err != nil {
			return nil, err
		}
		d.Task = t
		due = append(due, d)
	}
	return due, rows.Err()
}

// MarkReminded stamps reminded_at on the given tasks.
func (r *taskRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `UPDATE tasks SET reminded_at = $1 WHERE id = ANY($2)`, at, pq.Array(ids))
	return err
}

// Update applies patch. Patching Completed also sets or clears completed_at.
// A new due date clears reminded_at so the task is reminded again.
func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	b := newUpdateBuilder()
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.DueDate != nil {
		b.set("due_date", *patch.DueDate)
		b.setRaw("reminded_at = NULL")
	}
	if patch.Assignee != nil {
		b.set("assignee", *patch.Assignee)
	}
	if patch.Completed != nil {
		b.set("completed", *patch.Completed)
		if *patch.Completed {
			b.setRaw("completed_at = COALESCE(completed_at, NOW())")
		} else {
			b.setRaw("completed_at = NULL")
		}
	}
	if patch.Priority != nil {
		b.set("priority", *patch.Priority)
	}
	if patch.Category != nil {
		b.set("category", *patch.Category)
	}
	if !b.changed {
		return r.GetByID(ctx, id)
	}
	query, args := b.build("tasks", id, taskColumns)
	t, err := scanTask(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "tasks", id)
}
