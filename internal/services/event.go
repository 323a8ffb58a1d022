package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	taskRepo       domain.TaskRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService. The task repository feeds progress recomputation.
func NewEventService(eventRepo domain.EventRepository, taskRepo domain.TaskRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		taskRepo:       taskRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.Status == "" {
		event.Status = domain.EventStatusPlanning
	}
	if !event.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, event.Status)
	}
	if event.CoupleNames == nil {
		event.CoupleNames = []string{}
	}
	event.CreatedBy = actor.UserID
	event.Progress = 0
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, actor domain.Actor, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return visibleEvent(ctx, s.eventRepo, actor, id)
}

func (s *eventService) ListMyEvents(ctx context.Context, actor domain.Actor) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	events, err := s.eventRepo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListPublicEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, id); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		patch.Title = &title
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
	}
	updated, err := s.eventRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update event", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return passThrough("delete event", err)
	}
	return nil
}

// RecomputeProgress stores the task completion rate on the event and returns it.
func (s *eventService) RecomputeProgress(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tasks, err := s.taskRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("list tasks: %w", err)
	}
	progress := SummarizeTasks(tasks, time.Now()).CompletionRate
	if err := s.eventRepo.SetProgress(ctx, eventID, progress); err != nil {
		return 0, passThrough("set progress", err)
	}
	return progress, nil
}
