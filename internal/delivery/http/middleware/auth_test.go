package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
	"weddingplanner/internal/session"
)

// fakeAuthenticator implements Authenticator for tests.
type fakeAuthenticator struct {
	claims domain.TokenClaims
	err    error
	token  string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (domain.TokenClaims, error) {
	f.token = token
	if f.err != nil {
		return domain.TokenClaims{}, f.err
	}
	return f.claims, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	valid := domain.TokenClaims{TokenID: "jti-1", UserID: "user-123", Email: "a@example.com", Role: domain.RoleCouple}

	tests := []struct {
		name         string
		authHeader   string
		authn        *fakeAuthenticator
		wantStatus   int
		wantBodyCode string
		nextCalled   bool
	}{
		{
			name:       "valid token sets session and calls next",
			authHeader: "Bearer valid-token",
			authn:      &fakeAuthenticator{claims: valid},
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
		{
			name:       "scheme is case insensitive",
			authHeader: "bearer valid-token",
			authn:      &fakeAuthenticator{claims: valid},
			wantStatus: http.StatusOK,
			nextCalled: true,
		},
		{
			name:         "missing authorization header",
			authn:        &fakeAuthenticator{claims: valid},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "invalid authorization format no Bearer prefix",
			authHeader:   "Basic abc",
			authn:        &fakeAuthenticator{claims: valid},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			authn:        &fakeAuthenticator{claims: valid},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "revoked or expired token",
			authHeader:   "Bearer bad-token",
			authn:        &fakeAuthenticator{err: domain.ErrUnauthorized},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "denylist unavailable",
			authHeader:   "Bearer valid-token",
			authn:        &fakeAuthenticator{err: errors.New("redis: connection refused")},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var captured session.Session
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured, _ = session.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}
			handler := RequireAuth(tt.authn, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, "valid-token", tt.authn.token)
				assert.Equal(t, "user-123", captured.UserID)
				assert.Equal(t, "jti-1", captured.TokenID)
				assert.Equal(t, domain.RoleCouple, captured.Actor().Role)
			}
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	authn := &fakeAuthenticator{claims: domain.TokenClaims{UserID: "user-1", Role: domain.RoleGuest}}
	var got session.Session
	var ok bool
	handler := OptionalAuth(authn)(func(w http.ResponseWriter, r *http.Request) {
		got, ok = session.FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	handler(httptest.NewRecorder(), req)
	assert.False(t, ok, "anonymous request has no session")

	req.Header.Set("Authorization", "Bearer t")
	handler(httptest.NewRecorder(), req)
	require.True(t, ok)
	assert.Equal(t, "user-1", got.UserID)

	authn.err = domain.ErrUnauthorized
	handler(httptest.NewRecorder(), req)
	assert.False(t, ok, "an invalid token falls back to anonymous")
}
