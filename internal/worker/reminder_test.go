package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	domain.TaskRepository
	due      []*domain.DueTask
	err      error
	markErr  error
	from, to time.Time
	reminded map[string]time.Time
}

func (f *fakeTaskRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.DueTask, 0, len(f.due))
	for _, d := range f.due {
		if _, ok := f.reminded[d.ID]; !ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.reminded == nil {
		f.reminded = make(map[string]time.Time)
	}
	for _, id := range ids {
		f.reminded[id] = at
	}
	return nil
}

type fakeEmails struct {
	domain.EmailService
	sent   []*domain.TaskReminderEmailData
	failTo string
}

func (f *fakeEmails) SendTaskReminder(ctx context.Context, data *domain.TaskReminderEmailData) error {
	if data.Email == f.failTo {
		return errors.New("mailbox full")
	}
	f.sent = append(f.sent, data)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dueTask(title, ownerID, email string, due *time.Time, completed bool) *domain.DueTask {
	return &domain.DueTask{
		Task:       &domain.Task{ID: "task-" + title, Title: title, DueDate: due, Completed: completed, Priority: domain.TaskPriorityHigh},
		EventTitle: "Wedding",
		OwnerID:    ownerID,
		OwnerName:  "Owner " + ownerID,
		OwnerEmail: email,
	}
}

func TestReminder_RunOnce(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	day := func(n int) *time.Time {
		d := now.AddDate(0, 0, n)
		return &d
	}
	tasks := &fakeTaskRepo{due: []*domain.DueTask{
		dueTask("Cake tasting", "u1", "ann@example.com", day(5), false),
		dueTask("Book band", "u1", "ann@example.com", day(2), false),
		dueTask("Already done", "u1", "ann@example.com", day(1), true),
		dueTask("No date", "u1", "ann@example.com", nil, false),
		dueTask("Flowers", "u2", "bo@example.com", day(3), false),
		dueTask("No email", "u3", "", day(3), false),
	}}
	emails := &fakeEmails{}
	r := NewReminder(tasks, emails, testLogger(), ReminderConfig{WindowDays: 7, AppURL: "https://planner.test"})
	r.now = func() time.Time { return now }

	sent, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, now, tasks.from)
	assert.Equal(t, now.AddDate(0, 0, 7), tasks.to)

	require.Len(t, emails.sent, 2)
	ann := emails.sent[0]
	assert.Equal(t, "ann@example.com", ann.Email)
	assert.Equal(t, 7, ann.WindowDays)
	assert.Equal(t, "https://planner.test", ann.AppURL)
	require.Len(t, ann.Tasks, 2)
	assert.Equal(t, "Book band", ann.Tasks[0].Title)
	assert.Equal(t, "Cake tasting", ann.Tasks[1].Title)
	assert.Equal(t, "bo@example.com", emails.sent[1].Email)
}

func TestReminder_RunOnce_RemindsEachTaskOnce(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	tasks := &fakeTaskRepo{due: []*domain.DueTask{
		dueTask("Book band", "u1", "ann@example.com", &due, false),
		dueTask("Cake tasting", "u1", "ann@example.com", &due, false),
	}}
	emails := &fakeEmails{}
	r := NewReminder(tasks, emails, testLogger(), ReminderConfig{})
	r.now = func() time.Time { return now }

	sent, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, now, tasks.reminded["task-Book band"])
	assert.Equal(t, now, tasks.reminded["task-Cake tasting"])

	r.now = func() time.Time { return now.Add(time.Hour) }
	sent, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, emails.sent, 1)
}

func TestReminder_RunOnce_FailedSendIsRetried(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	tasks := &fakeTaskRepo{due: []*domain.DueTask{dueTask("A", "u1", "ann@example.com", &due, false)}}
	emails := &fakeEmails{failTo: "ann@example.com"}
	r := NewReminder(tasks, emails, testLogger(), ReminderConfig{})

	sent, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, tasks.reminded)

	emails.failTo = ""
	sent, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Contains(t, tasks.reminded, "task-A")
}

func TestReminder_RunOnce_MarkFailureIsLogged(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	tasks := &fakeTaskRepo{
		due:     []*domain.DueTask{dueTask("A", "u1", "ann@example.com", &due, false)},
		markErr: errors.New("db down"),
	}
	r := NewReminder(tasks, &fakeEmails{}, testLogger(), ReminderConfig{})

	sent, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestReminder_RunOnce_SendFailureContinues(t *testing.T) {
	now := time.Now()
	due := now.Add(24 * time.Hour)
	tasks := &fakeTaskRepo{due: []*domain.DueTask{
		dueTask("A", "u1", "ann@example.com", &due, false),
		dueTask("B", "u2", "bo@example.com", &due, false),
	}}
	emails := &fakeEmails{failTo: "ann@example.com"}
	r := NewReminder(tasks, emails, testLogger(), ReminderConfig{})

	sent, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "bo@example.com", emails.sent[0].Email)
}

func TestReminder_RunOnce_RepoError(t *testing.T) {
	r := NewReminder(&fakeTaskRepo{err: errors.New("db down")}, &fakeEmails{}, testLogger(), ReminderConfig{})
	_, err := r.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list due tasks")
}

func TestNewReminder_Defaults(t *testing.T) {
	r := NewReminder(&fakeTaskRepo{}, &fakeEmails{}, testLogger(), ReminderConfig{})
	assert.Equal(t, 7, r.cfg.WindowDays)
	assert.Equal(t, time.Hour, r.cfg.Interval)
}

func TestReminder_RunStopsOnCancel(t *testing.T) {
	tasks := &fakeTaskRepo{}
	r := NewReminder(tasks, &fakeEmails{}, testLogger(), ReminderConfig{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reminder worker did not stop")
	}
}
