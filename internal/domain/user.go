package domain

import (
	"context"
	"time"
)

// Role is the fixed application role assigned when a profile is created.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleVendor  Role = "vendor"
	RoleCouple  Role = "couple"
	RoleGuest   Role = "guest"
	RoleGeneral Role = "general"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleCouple, RoleGuest, RoleGeneral:
		return true
	}
	return false
}

// User is the profile row for an authenticated identity.
// swagger:model User
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Persisted is false for fallback profiles that were never written to storage.
	Persisted bool `json:"persisted"`
}

// NewUser returns a profile for the identity id. Only admins start approved.
func NewUser(id, name, email string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:         id,
		Name:       name,
		Email:      email,
		Role:       role,
		IsApproved: role == RoleAdmin,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// Identity is the credential record behind a profile. It is never serialized.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// ProfileInput carries the fields used to create a profile.
type ProfileInput struct {
	Name  string
	Email string
	Role  Role
}

// UserPatch holds the mutable profile fields. Role is fixed at creation and cannot be patched.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role       *Role
	IsApproved *bool
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenClaims is what a verified token tells us about the caller.
type TokenClaims struct {
	TokenID   string
	UserID    string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// TokenIssuer issues signed tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (token string, claims TokenClaims, err error)
}

// TokenVerifier verifies a token signature and expiry.
type TokenVerifier interface {
	Verify(token string) (TokenClaims, error)
}

// TokenDenylist records revoked token IDs until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IdentityRepository stores credentials.
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
}

// UserRepository defines profile storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*User, error)
	SetApproval(ctx context.Context, id string, approved bool) (*User, error)
	List(ctx context.Context, filter UserFilter, page PaginationParams) ([]*User, int, error)
	CountByRole(ctx context.Context) (map[Role]int, error)
}

// AuthSession is the result of a successful sign-in or session lookup.
type AuthSession struct {
	Token     string    `json:"token,omitempty"`
	TokenType string    `json:"token_type,omitempty"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Profile   *User     `json:"profile"`
}

// AuthService covers the identity lifecycle and profile bootstrap.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string, role Role) (*AuthSession, error)
	// CreateAdmin registers an approved admin; it is not exposed over HTTP.
	CreateAdmin(ctx context.Context, email, password, name string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*AuthSession, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*AuthSession, error)
	Authenticate(ctx context.Context, token string) (TokenClaims, error)
}

// ProfileService owns the profile row for an identity.
type ProfileService interface {
	// GetCurrentUserProfile returns nil, nil when the profile cannot be loaded for any reason other than a bad identity.
	GetCurrentUserProfile(ctx context.Context, userID string) (*User, error)
	// CreateUserProfile is idempotent: an existing row is returned unchanged.
	CreateUserProfile(ctx context.Context, id string, in ProfileInput) (*User, error)
	// EnsureUserProfile never fails; on error it returns a non-persisted fallback.
	EnsureUserProfile(ctx context.Context, identity *Identity, fallback *User) *User
	UpdateProfile(ctx context.Context, id string, patch UserPatch) (*User, error)
}
