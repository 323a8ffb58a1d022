package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type giftRegistryService struct {
	giftRepo       domain.GiftRegistryRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewGiftRegistryService creates a GiftRegistryService.
func NewGiftRegistryService(giftRepo domain.GiftRegistryRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.GiftRegistryService {
	return &giftRegistryService{
		giftRepo:       giftRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *giftRegistryService) ListItems(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.GiftRegistryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := visibleEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return nil, err
	}
	items, err := s.giftRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registry: %w", err)
	}
	return items, nil
}

func (s *giftRegistryService) CreateItem(ctx context.Context, actor domain.Actor, item *domain.GiftRegistryItem) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, item.EventID); err != nil {
		return err
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 0 || item.Price < 0 || item.Purchased < 0 {
		return fmt.Errorf("%w: price and quantities cannot be negative", domain.ErrInvalidInput)
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if err := s.giftRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("create registry item: %w", err)
	}
	return nil
}

func (s *giftRegistryService) UpdateItem(ctx context.Context, actor domain.Actor, id string, patch domain.GiftRegistryPatch) (*domain.GiftRegistryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, item.EventID); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if (patch.Price != nil && *patch.Price < 0) || (patch.Quantity != nil && *patch.Quantity < 0) || (patch.Purchased != nil && *patch.Purchased < 0) {
		return nil, fmt.Errorf("%w: price and quantities cannot be negative", domain.ErrInvalidInput)
	}
	updated, err := s.giftRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update registry item", err)
	}
	return updated, nil
}

// Purchase marks n more units as bought by any signed-in user who can see the registry.
func (s *giftRegistryService) Purchase(ctx context.Context, actor domain.Actor, id string, n int) (*domain.GiftRegistryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if n < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := visibleEvent(ctx, s.eventRepo, actor, item.EventID); err != nil {
		return nil, err
	}
	if item.Purchased+n > item.Quantity {
		return nil, fmt.Errorf("%w: only %d left to purchase", domain.ErrInvalidInput, item.Quantity-item.Purchased)
	}
	updated, err := s.giftRepo.IncrementPurchased(ctx, id, n)
	if err != nil {
		return nil, passThrough("purchase registry item", err)
	}
	return updated, nil
}

func (s *giftRegistryService) DeleteItem(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	item, err := s.getItem(ctx, id)
	if err != nil {
		return err
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, item.EventID); err != nil {
		return err
	}
	if err := s.giftRepo.Delete(ctx, id); err != nil {
		return passThrough("delete registry item", err)
	}
	return nil
}

func (s *giftRegistryService) getItem(ctx context.Context, id string) (*domain.GiftRegistryItem, error) {
	item, err := s.giftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registry item: %w", err)
	}
	return item, nil
}
