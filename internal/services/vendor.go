package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

const vendorCachePrefix = "vendors:"

type vendorService struct {
	vendorRepo     domain.VendorRepository
	cache          domain.Cache
	cacheTTL       time.Duration
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewVendorService creates a VendorService. Directory listings are cached for cacheTTL; a zero TTL disables caching.
func NewVendorService(vendorRepo domain.VendorRepository, cache domain.Cache, cacheTTL time.Duration, logger *slog.Logger, timeout time.Duration) domain.VendorService {
	return &vendorService{
		vendorRepo:     vendorRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func vendorCacheKey(filter domain.VendorFilter) string {
	return fmt.Sprintf("%slist:%s:%t:%t", vendorCachePrefix, strings.ToLower(filter.Category), filter.ApprovedOnly, filter.FeaturedOnly)
}

// ListVendors returns the directory. Cache failures fall through to the database.
func (s *vendorService) ListVendors(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := vendorCacheKey(filter)
	if s.cache != nil && s.cacheTTL > 0 {
		raw, err := s.cache.Get(ctx, key)
		if err == nil {
			var vendors []*domain.Vendor
			if err := json.Unmarshal(raw, &vendors); err == nil {
				return vendors, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "vendor cache read failed", "key", key, "err", err)
		}
	}

	vendors, err := s.vendorRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	if s.cache != nil && s.cacheTTL > 0 {
		if raw, err := json.Marshal(vendors); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
				s.logger.WarnContext(ctx, "vendor cache write failed", "key", key, "err", err)
			}
		}
	}
	return vendors, nil
}

func (s *vendorService) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, passThrough("get vendor", err)
	}
	return vendor, nil
}

// CreateProfile creates the vendor profile for the calling vendor user. New profiles await admin approval.
func (s *vendorService) CreateProfile(ctx context.Context, actor domain.Actor, vendor *domain.Vendor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.Role != domain.RoleVendor && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if vendor.ID == "" || !actor.IsAdmin() {
		vendor.ID = actor.UserID
	}
	vendor.Name = strings.TrimSpace(vendor.Name)
	vendor.Category = strings.TrimSpace(vendor.Category)
	if vendor.Name == "" || vendor.Category == "" {
		return fmt.Errorf("%w: name and category are required", domain.ErrInvalidInput)
	}
	if vendor.StartingPrice < 0 {
		return fmt.Errorf("%w: starting price cannot be negative", domain.ErrInvalidInput)
	}
	if vendor.Services == nil {
		vendor.Services = []string{}
	}
	vendor.Rating, vendor.ReviewCount = 0, 0
	vendor.IsApproved, vendor.IsFeatured = false, false
	vendor.CreatedAt = time.Now()
	vendor.UpdatedAt = vendor.CreatedAt
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: vendor profile already exists", domain.ErrConflict)
		}
		return fmt.Errorf("create vendor: %w", err)
	}
	s.InvalidateDirectory(ctx)
	return nil
}

func (s *vendorService) UpdateProfile(ctx context.Context, actor domain.Actor, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.CanManage(id) {
		return nil, domain.ErrForbidden
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, fmt.Errorf("%w: category cannot be empty", domain.ErrInvalidInput)
	}
	if patch.StartingPrice != nil && *patch.StartingPrice < 0 {
		return nil, fmt.Errorf("%w: starting price cannot be negative", domain.ErrInvalidInput)
	}
	updated, err := s.vendorRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update vendor", err)
	}
	s.InvalidateDirectory(ctx)
	return updated, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.CanManage(id) {
		return domain.ErrForbidden
	}
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return passThrough("delete vendor", err)
	}
	s.InvalidateDirectory(ctx)
	return nil
}

func (s *vendorService) SetApproval(ctx context.Context, actor domain.Actor, id string, approved bool) (*domain.Vendor, error) {
	return s.setFlags(ctx, actor, id, &approved, nil)
}

func (s *vendorService) SetFeatured(ctx context.Context, actor domain.Actor, id string, featured bool) (*domain.Vendor, error) {
	return s.setFlags(ctx, actor, id, nil, &featured)
}

func (s *vendorService) setFlags(ctx context.Context, actor domain.Actor, id string, approved, featured *bool) (*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	updated, err := s.vendorRepo.SetFlags(ctx, id, approved, featured)
	if err != nil {
		return nil, passThrough("set vendor flags", err)
	}
	s.InvalidateDirectory(ctx)
	return updated, nil
}

func (s *vendorService) InvalidateDirectory(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, vendorCachePrefix); err != nil {
		s.logger.WarnContext(ctx, "vendor cache invalidation failed", "err", err)
	}
}
