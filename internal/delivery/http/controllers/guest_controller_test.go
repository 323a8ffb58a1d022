package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGuestService implements domain.GuestService for handler tests.
type fakeGuestService struct {
	domain.GuestService
	err             error
	stats           domain.RSVPStats
	lastStatus      domain.RSVPStatus
	lastPlusOne     *bool
	lastPlusOneName *string
	lastCreate      *domain.Guest
}

func (f *fakeGuestService) CreateGuest(_ context.Context, _ domain.Actor, guest *domain.Guest) error {
	f.lastCreate = guest
	return f.err
}

func (f *fakeGuestService) RespondRSVP(_ context.Context, _ domain.Actor, id string, status domain.RSVPStatus, plusOne *bool, plusOneName *string) (*domain.Guest, error) {
	f.lastStatus, f.lastPlusOne, f.lastPlusOneName = status, plusOne, plusOneName
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Guest{ID: id, RSVPStatus: status}, nil
}

func (f *fakeGuestService) RSVPStats(context.Context, domain.Actor, string) (domain.RSVPStats, error) {
	return f.stats, f.err
}

func TestGuestController_RespondRSVP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatus     int
		wantBodySubstr string
		check          func(t *testing.T, f *fakeGuestService)
	}{
		{
			name:       "attending with plus-one",
			body:       `{"status":"attending","plus_one":true,"plus_one_name":"Jo"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f *fakeGuestService) {
				assert.Equal(t, domain.RSVPAttending, f.lastStatus)
				require.NotNil(t, f.lastPlusOne)
				assert.True(t, *f.lastPlusOne)
				require.NotNil(t, f.lastPlusOneName)
				assert.Equal(t, "Jo", *f.lastPlusOneName)
			},
		},
		{
			name:       "declined leaves plus-one fields unset",
			body:       `{"status":"declined"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f *fakeGuestService) {
				assert.Equal(t, domain.RSVPDeclined, f.lastStatus)
				assert.Nil(t, f.lastPlusOne)
				assert.Nil(t, f.lastPlusOneName)
			},
		},
		{
			name:           "invalid status",
			body:           `{"status":"maybe"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "status must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGuestService{}
			ctrl := NewGuestController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/guests/"+itemID+"/rsvp", bytes.NewBufferString(tt.body))
			req.SetPathValue("guestID", itemID)
			req = withActor(req, coupleID, domain.RoleCouple)
			rr := httptest.NewRecorder()

			ctrl.RespondRSVP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			apiErr := decodeEnvelope(t, rr, nil)
			if tt.check != nil {
				require.Nil(t, apiErr)
				tt.check(t, fake)
			}
			if tt.wantBodySubstr != "" {
				require.NotNil(t, apiErr)
				assert.Contains(t, apiErr.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestGuestController_CreateGuest_SetsEventFromPath(t *testing.T) {
	fake := &fakeGuestService{}
	ctrl := NewGuestController(testLogger, fake)
	req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/guests", bytes.NewBufferString(`{"name":"Pat","plus_one":true}`))
	req.SetPathValue("eventID", eventID)
	req = withActor(req, coupleID, domain.RoleCouple)
	rr := httptest.NewRecorder()

	ctrl.CreateGuest(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, fake.lastCreate)
	assert.Equal(t, eventID, fake.lastCreate.EventID)
	assert.Equal(t, "Pat", fake.lastCreate.Name)
	assert.True(t, fake.lastCreate.PlusOne)
}

func TestGuestController_RSVPStats(t *testing.T) {
	want := domain.RSVPStats{Total: 4, Attending: 2, Declined: 1, Pending: 1, PlusOnes: 1, TotalAttending: 3, ResponseRate: 75}
	fake := &fakeGuestService{stats: want}
	ctrl := NewGuestController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/"+eventID+"/guests/stats", nil)
	req.SetPathValue("eventID", eventID)
	req = withActor(req, coupleID, domain.RoleCouple)
	rr := httptest.NewRecorder()

	ctrl.RSVPStats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.RSVPStats
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, want, got)
}
