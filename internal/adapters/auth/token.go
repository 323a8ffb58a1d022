package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"weddingplanner/internal/domain"
)

const tokenIssuer = "weddingplanner"

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type jwtTokens struct {
	secret []byte
	now    func() time.Time
}

// NewJWTIssuer returns a TokenIssuer that signs HS256 JWTs with a random jti.
func NewJWTIssuer(secret string) domain.TokenIssuer {
	return &jwtTokens{secret: []byte(secret), now: time.Now}
}

// NewJWTVerifier returns a TokenVerifier for tokens signed by NewJWTIssuer with the same secret.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtTokens{secret: []byte(secret), now: time.Now}
}

func (j *jwtTokens) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, domain.TokenClaims, error) {
	now := j.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", domain.TokenClaims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, toDomainClaims(&claims), nil
}

// Verify checks signature, algorithm, issuer and expiry. Every failure wraps domain.ErrUnauthorized.
func (j *jwtTokens) Verify(tokenString string) (domain.TokenClaims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenClaims{}, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
		}
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return domain.TokenClaims{}, fmt.Errorf("%w: token is missing subject or id", domain.ErrUnauthorized)
	}
	return toDomainClaims(claims), nil
}

func toDomainClaims(c *jwtClaims) domain.TokenClaims {
	out := domain.TokenClaims{
		TokenID: c.ID,
		UserID:  c.Subject,
		Email:   c.Email,
		Role:    c.Role,
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
