package domain

import (
	"context"
	"time"
)

// TaskPriority ranks planning tasks.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a checklist item belonging to one event.
// swagger:model Task
type Task struct {
	ID          string       `json:"id"`
	EventID     string       `json:"event_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"due_date"`
	Assignee    string       `json:"assignee"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completed_at"`
	Priority    TaskPriority `json:"priority"`
	Category    string       `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskPatch holds optional task fields. Setting Completed also sets or clears completed_at.
type TaskPatch struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	DueDate     *time.Time    `json:"due_date"`
	Assignee    *string       `json:"assignee"`
	Completed   *bool         `json:"completed"`
	Priority    *TaskPriority `json:"priority"`
	Category    *string       `json:"category"`
}

// TaskStats summarizes completion for an event.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"`
}

// DueTask is an incomplete task joined with the owner it should be reminded to.
type DueTask struct {
	*Task
	EventTitle string
	OwnerID    string
	OwnerName  string
	OwnerEmail string
}

// TaskRepository defines task storage.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Task, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*DueTask, error)
	MarkReminded(ctx context.Context, ids []string, at time.Time) error
	Update(ctx context.Context, id string, patch TaskPatch) (*Task, error)
	Delete(ctx context.Context, id string) error
}

// TaskService manages event tasks. Every write refreshes the event's cached progress.
type TaskService interface {
	ListTasks(ctx context.Context, actor Actor, eventID string) ([]*Task, error)
	CreateTask(ctx context.Context, actor Actor, task *Task) error
	UpdateTask(ctx context.Context, actor Actor, id string, patch TaskPatch) (*Task, error)
	CompleteTask(ctx context.Context, actor Actor, id string, completed bool) (*Task, error)
	DeleteTask(ctx context.Context, actor Actor, id string) error
	TaskStats(ctx context.Context, actor Actor, eventID string) (TaskStats, error)
}
