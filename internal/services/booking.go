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

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	vendorRepo     domain.VendorRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	appURL         string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	vendorRepo domain.VendorRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	appURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		vendorRepo:     vendorRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		appURL:         appURL,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *bookingService) ListByEvent(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListByVendor(ctx context.Context, actor domain.Actor, vendorID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.CanManage(vendorID) {
		return nil, domain.ErrForbidden
	}
	bookings, err := s.bookingRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListMine(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		bookings []*domain.Booking
		err      error
	)
	if actor.Role == domain.RoleVendor {
		bookings, err = s.bookingRepo.ListByVendor(ctx, actor.UserID)
	} else {
		bookings, err = s.bookingRepo.ListByCouple(ctx, actor.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("list my bookings: %w", err)
	}
	return bookings, nil
}

// CreateBooking books an approved vendor for one of the caller's events and notifies the vendor.
// New bookings always start as an inquiry.
func (s *bookingService) CreateBooking(ctx context.Context, actor domain.Actor, booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := managedEvent(ctx, s.eventRepo, actor, booking.EventID)
	if err != nil {
		return err
	}
	vendor, err := s.vendorRepo.GetByID(ctx, booking.VendorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown vendor", domain.ErrInvalidInput)
		}
		return fmt.Errorf("get vendor: %w", err)
	}
	if !vendor.IsApproved && !actor.IsAdmin() {
		return fmt.Errorf("%w: vendor is not approved", domain.ErrInvalidInput)
	}
	booking.Service = strings.TrimSpace(booking.Service)
	if booking.Service == "" {
		return fmt.Errorf("%w: service is required", domain.ErrInvalidInput)
	}
	if booking.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrInvalidInput)
	}
	booking.Status = domain.BookingInquiry
	booking.CoupleID = event.CreatedBy
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	s.notifyVendor(ctx, booking, event, vendor)
	return nil
}

func (s *bookingService) notifyVendor(ctx context.Context, booking *domain.Booking, event *domain.Event, vendor *domain.Vendor) {
	if s.emailService == nil || vendor.Email == "" {
		return
	}
	coupleName := strings.Join(event.CoupleNames, " & ")
	if coupleName == "" {
		if couple, err := s.userRepo.GetByID(ctx, booking.CoupleID); err == nil {
			coupleName = couple.Name
		}
	}
	err := s.emailService.SendBookingInquiry(ctx, &domain.BookingInquiryEmailData{
		VendorEmail: vendor.Email,
		VendorName:  vendor.Name,
		CoupleName:  coupleName,
		EventTitle:  event.Title,
		Service:     booking.Service,
		Date:        booking.Date,
		Amount:      booking.Amount,
		AppURL:      s.appURL,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "booking inquiry email failed", "booking_id", booking.ID, "err", err)
	}
}

// UpdateBooking lets the couple, the booked vendor or an admin change a booking.
// Marking it completed is left to the vendor or an admin.
func (s *bookingService) UpdateBooking(ctx context.Context, actor domain.Actor, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(booking.CoupleID) && actor.UserID != booking.VendorID {
		return nil, domain.ErrForbidden
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrInvalidInput, *patch.Status)
	}
	// Completed bookings verify reviews, so only the vendor or an admin may complete one.
	if patch.Status != nil && *patch.Status == domain.BookingCompleted && actor.UserID != booking.VendorID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if patch.Service != nil && strings.TrimSpace(*patch.Service) == "" {
		return nil, fmt.Errorf("%w: service cannot be empty", domain.ErrInvalidInput)
	}
	if patch.Amount != nil && *patch.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", domain.ErrInvalidInput)
	}
	updated, err := s.bookingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update booking", err)
	}
	return updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(booking.CoupleID) {
		return domain.ErrForbidden
	}
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return passThrough("delete booking", err)
	}
	return nil
}

func (s *bookingService) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}
