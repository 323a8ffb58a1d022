package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type guestService struct {
	guestRepo      domain.GuestRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewGuestService creates a GuestService.
func NewGuestService(guestRepo domain.GuestRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.GuestService {
	return &guestService{
		guestRepo:      guestRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *guestService) ListGuests(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, eventID); err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (s *guestService) CreateGuest(ctx context.Context, actor domain.Actor, guest *domain.Guest) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := managedEvent(ctx, s.eventRepo, actor, guest.EventID); err != nil {
		return err
	}
	guest.Name = strings.TrimSpace(guest.Name)
	if guest.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	guest.Email = strings.ToLower(strings.TrimSpace(guest.Email))
	if guest.RSVPStatus == "" {
		guest.RSVPStatus = domain.RSVPPending
	}
	if !guest.RSVPStatus.Valid() {
		return fmt.Errorf("%w: unknown rsvp status %q", domain.ErrInvalidInput, guest.RSVPStatus)
	}
	if !guest.PlusOne {
		guest.PlusOneName = ""
	}
	guest.CreatedAt = time.Now()
	guest.UpdatedAt = guest.CreatedAt
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (s *guestService) UpdateGuest(ctx context.Context, actor domain.Actor, id string, patch domain.GuestPatch) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.managedGuest(ctx, actor, id); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if patch.RSVPStatus != nil && !patch.RSVPStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown rsvp status %q", domain.ErrInvalidInput, *patch.RSVPStatus)
	}
	updated, err := s.guestRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update guest", err)
	}
	return updated, nil
}

// RespondRSVP records a response. Any valid status may replace any other.
func (s *guestService) RespondRSVP(ctx context.Context, actor domain.Actor, id string, status domain.RSVPStatus, plusOne *bool, plusOneName *string) (*domain.Guest, error) {
	patch := domain.GuestPatch{RSVPStatus: &status, PlusOne: plusOne, PlusOneName: plusOneName}
	if plusOne != nil && !*plusOne {
		empty := ""
		patch.PlusOneName = &empty
	}
	return s.UpdateGuest(ctx, actor, id, patch)
}

func (s *guestService) DeleteGuest(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.managedGuest(ctx, actor, id); err != nil {
		return err
	}
	if err := s.guestRepo.Delete(ctx, id); err != nil {
		return passThrough("delete guest", err)
	}
	return nil
}

func (s *guestService) RSVPStats(ctx context.Context, actor domain.Actor, eventID string) (domain.RSVPStats, error) {
	guests, err := s.ListGuests(ctx, actor, eventID)
	if err != nil {
		return domain.RSVPStats{}, err
	}
	return SummarizeRSVPs(guests), nil
}

func (s *guestService) managedGuest(ctx context.Context, actor domain.Actor, id string) (*domain.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	if _, err := managedEvent(ctx, s.eventRepo, actor, guest.EventID); err != nil {
		return nil, err
	}
	return guest, nil
}
