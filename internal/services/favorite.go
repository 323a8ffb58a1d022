package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weddingplanner/internal/domain"
)

type favoriteService struct {
	favoriteRepo   domain.FavoriteRepository
	vendorRepo     domain.VendorRepository
	contextTimeout time.Duration
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(favoriteRepo domain.FavoriteRepository, vendorRepo domain.VendorRepository, timeout time.Duration) domain.FavoriteService {
	return &favoriteService{
		favoriteRepo:   favoriteRepo,
		vendorRepo:     vendorRepo,
		contextTimeout: timeout,
	}
}

func (s *favoriteService) ListFavorites(ctx context.Context, actor domain.Actor) ([]*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids, err := s.favoriteRepo.ListVendorIDs(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Vendor{}, nil
	}
	vendors, err := s.vendorRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list favorite vendors: %w", err)
	}
	return vendors, nil
}

func (s *favoriteService) ListFavoriteIDs(ctx context.Context, actor domain.Actor) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids, err := s.favoriteRepo.ListVendorIDs(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

// Add is idempotent.
func (s *favoriteService) Add(ctx context.Context, actor domain.Actor, vendorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.add(ctx, actor, vendorID)
}

// Remove is idempotent.
func (s *favoriteService) Remove(ctx context.Context, actor domain.Actor, vendorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.favoriteRepo.Remove(ctx, actor.UserID, vendorID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) Toggle(ctx context.Context, actor domain.Actor, vendorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	removed, err := s.favoriteRepo.Remove(ctx, actor.UserID, vendorID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	if removed {
		return false, nil
	}
	if err := s.add(ctx, actor, vendorID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, actor domain.Actor, vendorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.favoriteRepo.Exists(ctx, actor.UserID, vendorID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}

func (s *favoriteService) add(ctx context.Context, actor domain.Actor, vendorID string) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if _, err := s.vendorRepo.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get vendor: %w", err)
	}
	if err := s.favoriteRepo.Add(ctx, actor.UserID, vendorID); err != nil && !errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}
