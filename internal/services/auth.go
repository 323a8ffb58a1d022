package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"weddingplanner/internal/domain"
	"weddingplanner/internal/session"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthConfig holds the token settings of the auth service.
type AuthConfig struct {
	TokenExpiry    time.Duration
	AppURL         string
	ContextTimeout time.Duration
}

type authService struct {
	identityRepo domain.IdentityRepository
	profiles     domain.ProfileService
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	verifier     domain.TokenVerifier
	denylist     domain.TokenDenylist
	emailService domain.EmailService
	broker       *session.Broker
	logger       *slog.Logger
	cfg          AuthConfig
}

// NewAuthService wires the identity store, token adapters and profile service together.
// emailService may be nil, in which case no welcome email is sent.
func NewAuthService(
	identityRepo domain.IdentityRepository,
	profiles domain.ProfileService,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	denylist domain.TokenDenylist,
	emailService domain.EmailService,
	broker *session.Broker,
	logger *slog.Logger,
	cfg AuthConfig,
) domain.AuthService {
	return &authService{
		identityRepo: identityRepo,
		profiles:     profiles,
		hasher:       hasher,
		issuer:       issuer,
		verifier:     verifier,
		denylist:     denylist,
		emailService: emailService,
		broker:       broker,
		logger:       logger,
		cfg:          cfg,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, name string, role domain.Role) (*domain.AuthSession, error) {
	if role == "" {
		role = domain.RoleGeneral
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if role == domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot be self-registered", domain.ErrForbidden)
	}
	identity, user, err := s.register(ctx, email, password, name, role)
	if err != nil {
		return nil, err
	}
	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name, Role: user.Role, AppURL: s.cfg.AppURL}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return s.startSession(ctx, identity, user)
}

// CreateAdmin registers an approved admin account. It is only reachable from the CLI.
func (s *authService) CreateAdmin(ctx context.Context, email, password, name string) (*domain.User, error) {
	_, user, err := s.register(ctx, email, password, name, domain.RoleAdmin)
	return user, err
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	identity, err := s.identityRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if err := s.hasher.Compare(identity.PasswordHash, identity.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	user := s.profiles.EnsureUserProfile(ctx, identity, nil)
	return s.startSession(ctx, identity, user)
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl > 0 {
		if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	s.broker.Publish(session.AuthEvent{Type: session.SignedOut, UserID: claims.UserID, Email: claims.Email, At: time.Now()})
	return nil
}

func (s *authService) GetSession(ctx context.Context, token string) (*domain.AuthSession, error) {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetCurrentUserProfile(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthSession{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
		Profile:   profile,
	}, nil
}

// Authenticate verifies the token and rejects revoked ones.
func (s *authService) Authenticate(ctx context.Context, token string) (domain.TokenClaims, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return domain.TokenClaims{}, domain.ErrUnauthorized
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return domain.TokenClaims{}, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return domain.TokenClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) register(ctx context.Context, email, password, name string, role domain.Role) (*domain.Identity, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, nil, err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, nil, err
	}
	identity := &domain.Identity{Email: email, PasswordHash: hash, Salt: salt, CreatedAt: time.Now()}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return nil, nil, fmt.Errorf("create identity: %w", err)
	}
	user, err := s.profiles.CreateUserProfile(ctx, identity.ID, domain.ProfileInput{Name: name, Email: email, Role: role})
	if err != nil {
		return nil, nil, fmt.Errorf("create profile: %w", err)
	}
	return identity, user, nil
}

func (s *authService) startSession(ctx context.Context, identity *domain.Identity, user *domain.User) (*domain.AuthSession, error) {
	token, claims, err := s.issuer.Issue(identity.ID, identity.Email, user.Role, s.cfg.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.broker.Publish(session.AuthEvent{Type: session.SignedIn, UserID: identity.ID, Email: identity.Email, At: time.Now()})
	return &domain.AuthSession{
		Token:     token,
		TokenType: "Bearer",
		UserID:    identity.ID,
		Email:     identity.Email,
		ExpiresAt: claims.ExpiresAt,
		Profile:   user,
	}, nil
}
