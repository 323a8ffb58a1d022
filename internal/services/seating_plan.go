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

type seatingService struct {
	seatingRepo    domain.SeatingRepository
	guestRepo      domain.GuestRepository
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSeatingService creates a SeatingService.
func NewSeatingService(seatingRepo domain.SeatingRepository, guestRepo domain.GuestRepository, eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.SeatingService {
	return &seatingService{
		seatingRepo:    seatingRepo,
		guestRepo:      guestRepo,
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *seatingService) ListPlans(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.SeatingPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return nil, err
	}
	plans, err := s.seatingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list seating plans: %w", err)
	}
	return plans, nil
}

func (s *seatingService) GetPlan(ctx context.Context, actor domain.Actor, id string) (*domain.SeatingPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.managedPlan(ctx, actor, id)
}

func (s *seatingService) CreatePlan(ctx context.Context, actor domain.Actor, plan *domain.SeatingPlan) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, plan.EventID); err != nil {
		return err
	}
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if plan.Tables == nil {
		plan.Tables = []domain.Table{}
	}
	if err := validateTables(plan.Tables); err != nil {
		return err
	}
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	if err := s.seatingRepo.Create(ctx, plan); err != nil {
		return fmt.Errorf("create seating plan: %w", err)
	}
	return nil
}

func (s *seatingService) UpdatePlan(ctx context.Context, actor domain.Actor, id string, patch domain.SeatingPlanPatch) (*domain.SeatingPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.managedPlan(ctx, actor, id); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if patch.Tables != nil {
		if err := validateTables(*patch.Tables); err != nil {
			return nil, err
		}
	}
	updated, err := s.seatingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update seating plan", err)
	}
	return updated, nil
}

func (s *seatingService) DeletePlan(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.managedPlan(ctx, actor, id); err != nil {
		return err
	}
	if err := s.seatingRepo.Delete(ctx, id); err != nil {
		return passThrough("delete seating plan", err)
	}
	return nil
}

// AutoAssign seats the event's unassigned guests using the plan's tables.
// Each placement is written as its own guest update; a failure stops the pass
// and leaves earlier placements in place.
func (s *seatingService) AutoAssign(ctx context.Context, actor domain.Actor, planID string) (*domain.AutoAssignResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	plan, err := s.managedPlan(ctx, actor, planID)
	if err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.ListByEvent(ctx, plan.EventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	res := AutoAssignSeats(guests, plan.Tables)
	for _, a := range res.Assigned {
		table := a.TableNumber
		if _, err := s.guestRepo.Update(ctx, a.GuestID, domain.GuestPatch{TableNumber: &table}); err != nil {
			return nil, fmt.Errorf("assign guest %s: %w", a.GuestID, err)
		}
	}
	s.logger.InfoContext(ctx, "seating auto-assigned",
		"plan_id", plan.ID, "assigned", len(res.Assigned), "unassigned", len(res.Unassigned))
	return &res, nil
}

// AssignGuest moves a guest to a table, or clears the table when tableNumber is nil.
func (s *seatingService) AssignGuest(ctx context.Context, actor domain.Actor, guestID string, tableNumber *int) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, guest.EventID); err != nil {
		return nil, err
	}
	patch := domain.GuestPatch{TableNumber: tableNumber, ClearTable: tableNumber == nil}
	if tableNumber != nil && *tableNumber < 1 {
		return nil, fmt.Errorf("%w: table number must be positive", domain.ErrInvalidInput)
	}
	updated, err := s.guestRepo.Update(ctx, guestID, patch)
	if err != nil {
		return nil, passThrough("assign guest", err)
	}
	return updated, nil
}

func (s *seatingService) ClearAssignments(ctx context.Context, actor domain.Actor, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return 0, err
	}
	n, err := s.guestRepo.ClearTablesByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("clear seating: %w", err)
	}
	return n, nil
}

func (s *seatingService) managedPlan(ctx context.Context, actor domain.Actor, id string) (*domain.SeatingPlan, error) {
	plan, err := s.seatingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get seating plan: %w", err)
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, plan.EventID); err != nil {
		return nil, err
	}
	return plan, nil
}

func validateTables(tables []domain.Table) error {
	seen := make(map[int]struct{}, len(tables))
	for _, t := range tables {
		if t.Number < 1 {
			return fmt.Errorf("%w: table number must be positive", domain.ErrInvalidInput)
		}
		if t.Seats < 1 {
			return fmt.Errorf("%w: table %d needs at least one seat", domain.ErrInvalidInput, t.Number)
		}
		if _, dup := seen[t.Number]; dup {
			return fmt.Errorf("%w: duplicate table number %d", domain.ErrInvalidInput, t.Number)
		}
		seen[t.Number] = struct{}{}
	}
	return nil
}
