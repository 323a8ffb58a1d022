package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type budgetService struct {
	budgetRepo     domain.BudgetRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewBudgetService creates a BudgetService.
func NewBudgetService(budgetRepo domain.BudgetRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.BudgetService {
	return &budgetService{
		budgetRepo:     budgetRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *budgetService) ListItems(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.BudgetItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return nil, err
	}
	items, err := s.budgetRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	return items, nil
}

func (s *budgetService) CreateItem(ctx context.Context, actor domain.Actor, item *domain.BudgetItem) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, item.EventID); err != nil {
		return err
	}
	item.Category = strings.TrimSpace(item.Category)
	if item.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if item.Budgeted < 0 || item.Spent < 0 {
		return fmt.Errorf("%w: amounts cannot be negative", domain.ErrInvalidInput)
	}
	if item.Vendors == nil {
		item.Vendors = []string{}
	}
	item.Remaining = item.Budgeted - item.Spent
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if err := s.budgetRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("create budget item: %w", err)
	}
	return nil
}

// UpdateItem recomputes Remaining from the merged row only when Budgeted or Spent change.
func (s *budgetService) UpdateItem(ctx context.Context, actor domain.Actor, id string, patch domain.BudgetItemPatch) (*domain.BudgetItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.managedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: category cannot be empty", domain.ErrInvalidInput)
		}
		patch.Category = &category
	}
	if (patch.Budgeted != nil && *patch.Budgeted < 0) || (patch.Spent != nil && *patch.Spent < 0) {
		return nil, fmt.Errorf("%w: amounts cannot be negative", domain.ErrInvalidInput)
	}
	patch.Remaining = nil
	if patch.Budgeted != nil || patch.Spent != nil {
		budgeted, spent := current.Budgeted, current.Spent
		if patch.Budgeted != nil {
			budgeted = *patch.Budgeted
		}
		if patch.Spent != nil {
			spent = *patch.Spent
		}
		remaining := budgeted - spent
		patch.Remaining = &remaining
	}
	updated, err := s.budgetRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update budget item", err)
	}
	return updated, nil
}

func (s *budgetService) DeleteItem(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.managedItem(ctx, actor, id); err != nil {
		return err
	}
	if err := s.budgetRepo.Delete(ctx, id); err != nil {
		return passThrough("delete budget item", err)
	}
	return nil
}

func (s *budgetService) Summary(ctx context.Context, actor domain.Actor, eventID string) (domain.BudgetSummary, error) {
	items, err := s.ListItems(ctx, actor, eventID)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	return SummarizeBudget(items), nil
}

func (s *budgetService) Alerts(ctx context.Context, actor domain.Actor, eventID string) ([]domain.BudgetAlert, error) {
	items, err := s.ListItems(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	return BudgetAlerts(items), nil
}

func (s *budgetService) managedItem(ctx context.Context, actor domain.Actor, id string) (*domain.BudgetItem, error) {
	item, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get budget item: %w", err)
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, item.EventID); err != nil {
		return nil, err
	}
	return item, nil
}
