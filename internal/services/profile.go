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

type profileService struct {
	identityRepo   domain.IdentityRepository
	userRepo       domain.UserRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewProfileService creates a ProfileService backed by the identity and profile repositories.
func NewProfileService(identityRepo domain.IdentityRepository, userRepo domain.UserRepository, logger *slog.Logger, timeout time.Duration) domain.ProfileService {
	return &profileService{
		identityRepo:   identityRepo,
		userRepo:       userRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *profileService) GetCurrentUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.identityRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "profile lookup failed", "user_id", userID, "err", err)
		}
		return nil, nil
	}
	return user, nil
}

func (s *profileService) CreateUserProfile(ctx context.Context, id string, in domain.ProfileInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.userRepo.GetByID(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	role := in.Role
	if !role.Valid() {
		role = domain.RoleGeneral
	}
	now := time.Now()
	user := domain.NewUser(id, strings.TrimSpace(in.Name), strings.ToLower(strings.TrimSpace(in.Email)), role, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race with a concurrent create for the same identity.
			return s.userRepo.GetByID(ctx, id)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return user, nil
}

func (s *profileService) EnsureUserProfile(ctx context.Context, identity *domain.Identity, fallback *domain.User) *domain.User {
	if fallback == nil {
		fallback = fallbackProfile(identity)
	}
	fallback.Persisted = false
	if identity == nil {
		return fallback
	}
	user, err := s.CreateUserProfile(ctx, identity.ID, domain.ProfileInput{
		Name:  fallback.Name,
		Email: identity.Email,
		Role:  fallback.Role,
	})
	if err != nil || user == nil {
		s.logger.WarnContext(ctx, "using fallback profile", "user_id", identity.ID, "err", err)
		return fallback
	}
	return user
}

func (s *profileService) UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		patch.Email = &email
	}
	user, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, passThrough("update profile", err)
	}
	return user, nil
}

func fallbackProfile(identity *domain.Identity) *domain.User {
	now := time.Now()
	if identity == nil {
		return domain.NewUser("", "", "", domain.RoleGeneral, now, now)
	}
	name := identity.Email
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	return domain.NewUser(identity.ID, name, identity.Email, domain.RoleGeneral, now, now)
}
