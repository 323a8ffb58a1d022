package services

import (
	"context"
	"fmt"
	"time"

	"weddingplanner/internal/domain"
)

const maxAdminPageSize = 100

type adminService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	vendorRepo     domain.VendorRepository
	contextTimeout time.Duration
}

// NewAdminService creates an AdminService.
func NewAdminService(userRepo domain.UserRepository, eventRepo domain.EventRepository, bookingRepo domain.BookingRepository, vendorRepo domain.VendorRepository, timeout time.Duration) domain.AdminService {
	return &adminService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		vendorRepo:     vendorRepo,
		contextTimeout: timeout,
	}
}

func (s *adminService) ListUsers(ctx context.Context, actor domain.Actor, filter domain.UserFilter, page domain.PaginationParams) ([]*domain.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *filter.Role)
	}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 || page.PageSize > maxAdminPageSize {
		page.PageSize = 20
	}
	users, total, err := s.userRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *adminService) SetUserApproval(ctx context.Context, actor domain.Actor, userID string, approved bool) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	user, err := s.userRepo.SetApproval(ctx, userID, approved)
	if err != nil {
		return nil, passThrough("set user approval", err)
	}
	return user, nil
}

func (s *adminService) PlatformStats(ctx context.Context, actor domain.Actor) (domain.PlatformStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return domain.PlatformStats{}, domain.ErrForbidden
	}
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("count users: %w", err)
	}
	stats := domain.PlatformStats{UsersByRole: byRole}
	for _, n := range byRole {
		stats.TotalUsers += n
	}
	if stats.Events, err = s.eventRepo.Count(ctx); err != nil {
		return domain.PlatformStats{}, fmt.Errorf("count events: %w", err)
	}
	if stats.Bookings, err = s.bookingRepo.Count(ctx); err != nil {
		return domain.PlatformStats{}, fmt.Errorf("count bookings: %w", err)
	}
	if stats.PendingVendorApprovals, err = s.vendorRepo.CountPendingApproval(ctx); err != nil {
		return domain.PlatformStats{}, fmt.Errorf("count pending vendors: %w", err)
	}
	return stats, nil
}
