package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	domain.AuthService
	err          error
	lastEmail    string
	lastName     string
	lastRole     domain.Role
	lastToken    string
	signOutCalls int
}

func (f *fakeAuthService) SignUp(_ context.Context, email, _, name string, role domain.Role) (*domain.AuthSession, error) {
	f.lastEmail, f.lastName, f.lastRole = email, name, role
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AuthSession{Token: "tok", TokenType: "Bearer", UserID: coupleID, Email: email, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeAuthService) SignIn(_ context.Context, email, _ string) (*domain.AuthSession, error) {
	f.lastEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AuthSession{Token: "tok", UserID: coupleID, Email: email}, nil
}

func (f *fakeAuthService) SignOut(_ context.Context, token string) error {
	f.lastToken = token
	f.signOutCalls++
	return f.err
}

func (f *fakeAuthService) GetSession(_ context.Context, token string) (*domain.AuthSession, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AuthSession{UserID: coupleID, Email: "sam@example.com"}, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		wantRole       domain.Role
	}{
		{name: "success", body: `{"email":"sam@example.com","password":"secret123","name":" Sam ","role":"Couple"}`, wantStatus: http.StatusCreated, wantRole: domain.RoleCouple},
		{name: "role optional", body: `{"email":"sam@example.com","password":"secret123"}`, wantStatus: http.StatusCreated, wantRole: ""},
		{name: "short password", body: `{"email":"sam@example.com","password":"short"}`, wantStatus: http.StatusBadRequest, wantBodySubstr: "at least 8"},
		{name: "bad email", body: `{"email":"nope","password":"secret123"}`, wantStatus: http.StatusBadRequest, wantBodySubstr: "invalid email"},
		{name: "admin role rejected", body: `{"email":"sam@example.com","password":"secret123","role":"admin"}`, wantStatus: http.StatusBadRequest, wantBodySubstr: "role must be"},
		{name: "duplicate", body: `{"email":"sam@example.com","password":"secret123"}`, fakeErr: domain.ErrConflict, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{err: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var sess domain.AuthSession
			apiErr := decodeEnvelope(t, rr, &sess)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, apiErr)
				assert.Equal(t, "tok", sess.Token)
				assert.Equal(t, tt.wantRole, fake.lastRole)
			}
			if tt.wantBodySubstr != "" {
				require.NotNil(t, apiErr)
				assert.Contains(t, apiErr.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestAuthController_SignIn_InvalidCredentials(t *testing.T) {
	fake := &fakeAuthService{err: domain.ErrInvalidCredentials}
	ctrl := NewAuthController(testLogger, fake)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"sam@example.com","password":"wrong-pass"}`))
	rr := httptest.NewRecorder()

	ctrl.SignIn(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	apiErr := decodeEnvelope(t, rr, nil)
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestAuthController_SignOut(t *testing.T) {
	t.Run("revokes bearer token", func(t *testing.T) {
		fake := &fakeAuthService{}
		ctrl := NewAuthController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		rr := httptest.NewRecorder()

		ctrl.SignOut(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var status StatusResponse
		require.Nil(t, decodeEnvelope(t, rr, &status))
		assert.Equal(t, "signed_out", status.Status)
		assert.Equal(t, "abc.def.ghi", fake.lastToken)
	})

	t.Run("missing header", func(t *testing.T) {
		fake := &fakeAuthService{}
		ctrl := NewAuthController(testLogger, fake)
		rr := httptest.NewRecorder()

		ctrl.SignOut(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Zero(t, fake.signOutCalls)
	})
}

func TestAuthController_GetSession(t *testing.T) {
	fake := &fakeAuthService{}
	ctrl := NewAuthController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.Header.Set("Authorization", "bearer tok-1")
	rr := httptest.NewRecorder()

	ctrl.GetSession(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var sess domain.AuthSession
	require.Nil(t, decodeEnvelope(t, rr, &sess))
	assert.Equal(t, coupleID, sess.UserID)
	assert.Nil(t, sess.Profile)
	assert.Equal(t, "tok-1", fake.lastToken)
}
