package services

import (
	"context"
	"errors"
	"fmt"

	"weddingplanner/internal/domain"
)

// managedEvent loads an event the actor owns (or administers).
func managedEvent(ctx context.Context, repo domain.EventRepository, actor domain.Actor, eventID string) (*domain.Event, error) {
	event, err := repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !actor.CanManage(event.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// visibleEvent loads an event the actor manages or that is public.
func visibleEvent(ctx context.Context, repo domain.EventRepository, actor domain.Actor, eventID string) (*domain.Event, error) {
	event, err := repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.IsPublic && !actor.CanManage(event.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// passThrough keeps sentinel errors intact and wraps everything else with op.
func passThrough(op string, err error) error {
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrForbidden,
		domain.ErrInvalidInput,
		domain.ErrConflict,
		domain.ErrUnauthorized,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
