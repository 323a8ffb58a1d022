package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
	"weddingplanner/internal/session"
)

// Authenticator verifies a bearer token, including revocation.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.TokenClaims, error)
}

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadFormat     = errors.New("invalid authorization format")
	errMissingToken  = errors.New("missing token")
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errMissingHeader
	}
	const prefix = "Bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", errBadFormat
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// RequireAuth returns a wrapper that validates the Bearer token and stores the caller's
// session.Session in the request context. If the token is missing, invalid or revoked,
// it responds with 401 and does not call next.
func RequireAuth(authn Authenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			claims, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.ErrorContext(r.Context(), "authentication failed", "path", r.URL.Path, "err", err)
					h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not verify token")
					return
				}
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(session.WithSession(r.Context(), session.Session{
				TokenID:   claims.TokenID,
				UserID:    claims.UserID,
				Email:     claims.Email,
				Role:      claims.Role,
				ExpiresAt: claims.ExpiresAt,
			}))
			next(w, r)
		}
	}
}

// OptionalAuth attaches a session when a valid token is present and otherwise lets the request through anonymously.
func OptionalAuth(authn Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if token, err := BearerToken(r); err == nil {
				if claims, err := authn.Authenticate(r.Context(), token); err == nil {
					r = r.WithContext(session.WithSession(r.Context(), session.Session{
						TokenID:   claims.TokenID,
						UserID:    claims.UserID,
						Email:     claims.Email,
						Role:      claims.Role,
						ExpiresAt: claims.ExpiresAt,
					}))
				}
			}
			next(w, r)
		}
	}
}
