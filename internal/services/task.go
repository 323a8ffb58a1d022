package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type taskService struct {
	taskRepo       domain.TaskRepository
	eventRepo      domain.EventRepository
	events         domain.EventService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewTaskService creates a TaskService. events is used to refresh the cached event progress.
func NewTaskService(taskRepo domain.TaskRepository, eventRepo domain.EventRepository, events domain.EventService, logger *slog.Logger, timeout time.Duration) domain.TaskService {
	return &taskService{
		taskRepo:       taskRepo,
		eventRepo:      eventRepo,
		events:         events,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *taskService) ListTasks(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) CreateTask(ctx context.Context, actor domain.Actor, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, task.EventID); err != nil {
		return err
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if !task.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, task.Priority)
	}
	now := time.Now()
	if task.Completed {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.CreatedAt = now
	task.UpdatedAt = now
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	s.refreshProgress(ctx, task.EventID)
	return nil
}

func (s *taskService) UpdateTask(ctx context.Context, actor domain.Actor, id string, patch domain.TaskPatch) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	task, err := s.managedTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		patch.Title = &title
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, *patch.Priority)
	}
	updated, err := s.taskRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update task", err)
	}
	if patch.Completed != nil {
		s.refreshProgress(ctx, task.EventID)
	}
	return updated, nil
}

func (s *taskService) CompleteTask(ctx context.Context, actor domain.Actor, id string, completed bool) (*domain.Task, error) {
	return s.UpdateTask(ctx, actor, id, domain.TaskPatch{Completed: &completed})
}

func (s *taskService) DeleteTask(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	task, err := s.managedTask(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return passThrough("delete task", err)
	}
	s.refreshProgress(ctx, task.EventID)
	return nil
}

func (s *taskService) TaskStats(ctx context.Context, actor domain.Actor, eventID string) (domain.TaskStats, error) {
	tasks, err := s.ListTasks(ctx, actor, eventID)
	if err != nil {
		return domain.TaskStats{}, err
	}
	return SummarizeTasks(tasks, time.Now()), nil
}

func (s *taskService) managedTask(ctx context.Context, actor domain.Actor, id string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, task.EventID); err != nil {
		return nil, err
	}
	return task, nil
}

// refreshProgress is a separate write; a failure leaves the cached progress stale.
func (s *taskService) refreshProgress(ctx context.Context, eventID string) {
	if _, err := s.events.RecomputeProgress(ctx, eventID); err != nil {
		s.logger.WarnContext(ctx, "event progress not refreshed", "event_id", eventID, "err", err)
	}
}
