package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboardService implements domain.DashboardService for handler tests.
type fakeDashboardService struct {
	domain.DashboardService
	err         error
	lastEventID string
	lastActor   domain.Actor
}

func (f *fakeDashboardService) Couple(_ context.Context, actor domain.Actor, eventID string) (*domain.CoupleDashboard, error) {
	f.lastActor, f.lastEventID = actor, eventID
	if f.err != nil {
		return nil, f.err
	}
	event := &domain.Event{ID: eventID}
	return &domain.CoupleDashboard{Events: []*domain.Event{event}, Selected: &domain.EventOverview{Event: event}}, nil
}

func (f *fakeDashboardService) General(context.Context) (*domain.GeneralDashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.GeneralDashboard{FeaturedVendors: []*domain.Vendor{{ID: itemID, IsFeatured: true}}}, nil
}

func TestDashboardController_Couple(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		fakeErr     error
		wantStatus  int
		wantEventID string
	}{
		{name: "selected event", query: "?event_id=" + eventID, wantStatus: http.StatusOK, wantEventID: eventID},
		{name: "no selection", query: "", wantStatus: http.StatusOK, wantEventID: ""},
		{name: "malformed event id", query: "?event_id=abc", wantStatus: http.StatusBadRequest},
		{name: "someone else's event", query: "?event_id=" + eventID, fakeErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDashboardService{err: tt.fakeErr}
			ctrl := NewDashboardController(testLogger, fake)
			req := withActor(httptest.NewRequest(http.MethodGet, "/dashboard/couple"+tt.query, nil), coupleID, domain.RoleCouple)
			rr := httptest.NewRecorder()

			ctrl.Couple(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var dash domain.CoupleDashboard
			apiErr := decodeEnvelope(t, rr, &dash)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, apiErr)
				assert.Equal(t, tt.wantEventID, fake.lastEventID)
				assert.Equal(t, coupleID, fake.lastActor.UserID)
				require.NotNil(t, dash.Selected)
			}
		})
	}
}

func TestDashboardController_General_NoAuth(t *testing.T) {
	ctrl := NewDashboardController(testLogger, &fakeDashboardService{})
	rr := httptest.NewRecorder()

	ctrl.General(rr, httptest.NewRequest(http.MethodGet, "/dashboard/general", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var dash domain.GeneralDashboard
	require.Nil(t, decodeEnvelope(t, rr, &dash))
	require.Len(t, dash.FeaturedVendors, 1)
	assert.True(t, dash.FeaturedVendors[0].IsFeatured)
}

func TestDashboardController_Vendor_RequiresSession(t *testing.T) {
	ctrl := NewDashboardController(testLogger, &fakeDashboardService{})
	rr := httptest.NewRecorder()

	ctrl.Vendor(rr, httptest.NewRequest(http.MethodGet, "/dashboard/vendor", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
