// Package worker runs the scheduled background jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-co-op/gocron/v2"

	"weddingplanner/internal/domain"
	"weddingplanner/internal/metrics"
)

// ReminderConfig configures the task reminder job.
type ReminderConfig struct {
	Interval   time.Duration
	WindowDays int
	AppURL     string
}

// Reminder emails each event owner a digest of incomplete tasks due within the window.
// Each task is reminded once, or again after its due date changes.
type Reminder struct {
	tasks  domain.TaskRepository
	emails domain.EmailService
	logger *slog.Logger
	cfg    ReminderConfig
	now    func() time.Time
}

// NewReminder creates a Reminder.
func NewReminder(tasks domain.TaskRepository, emails domain.EmailService, logger *slog.Logger, cfg ReminderConfig) *Reminder {
	if cfg.WindowDays < 1 {
		cfg.WindowDays = 7
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Reminder{tasks: tasks, emails: emails, logger: logger, cfg: cfg, now: time.Now}
}

// RunOnce sends one digest per owner and returns how many were sent.
// Tasks in a delivered digest are marked reminded and skipped by later passes.
// A failed send is logged and does not stop the pass.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	start := r.now()
	defer func() { metrics.ReminderRunDuration.Observe(time.Since(start).Seconds()) }()

	due, err := r.tasks.ListDueBetween(ctx, start, start.AddDate(0, 0, r.cfg.WindowDays))
	if err != nil {
		return 0, fmt.Errorf("list due tasks: %w", err)
	}

	digests := make(map[string]*domain.TaskReminderEmailData)
	taskIDs := make(map[string][]string)
	var owners []string
	for _, t := range due {
		if t.Completed || t.DueDate == nil || t.OwnerEmail == "" {
			continue
		}
		d, ok := digests[t.OwnerID]
		if !ok {
			d = &domain.TaskReminderEmailData{
				Email:      t.OwnerEmail,
				Name:       t.OwnerName,
				WindowDays: r.cfg.WindowDays,
				AppURL:     r.cfg.AppURL,
			}
			digests[t.OwnerID] = d
			owners = append(owners, t.OwnerID)
		}
		taskIDs[t.OwnerID] = append(taskIDs[t.OwnerID], t.ID)
		d.Tasks = append(d.Tasks, domain.ReminderTask{
			Title:      t.Title,
			EventTitle: t.EventTitle,
			DueDate:    *t.DueDate,
			Priority:   t.Priority,
		})
	}

	sent := 0
	for _, owner := range owners {
		d := digests[owner]
		sort.SliceStable(d.Tasks, func(i, j int) bool { return d.Tasks[i].DueDate.Before(d.Tasks[j].DueDate) })
		if err := r.emails.SendTaskReminder(ctx, d); err != nil {
			metrics.ReminderEmails.WithLabelValues("failed").Inc()
			r.logger.ErrorContext(ctx, "task reminder failed", "user_id", owner, "err", err)
			continue
		}
		metrics.ReminderEmails.WithLabelValues("sent").Inc()
		sent++
		// An unmarked task is picked up again on the next pass.
		if err := r.tasks.MarkReminded(ctx, taskIDs[owner], start); err != nil {
			r.logger.ErrorContext(ctx, "mark tasks reminded failed", "user_id", owner, "err", err)
		}
	}
	r.logger.InfoContext(ctx, "task reminders processed", "due_tasks", len(due), "sent", sent)
	return sent, nil
}

// Run schedules RunOnce every Interval until ctx is cancelled.
func (r *Reminder) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(r.cfg.Interval),
		gocron.NewTask(func() {
			if _, err := r.RunOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "reminder run failed", "err", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	r.logger.InfoContext(ctx, "reminder worker started", "interval", r.cfg.Interval.String(), "window_days", r.cfg.WindowDays)
	scheduler.Start()
	<-ctx.Done()
	return scheduler.Shutdown()
}
