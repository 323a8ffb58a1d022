package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/session"
)

func TestMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Middleware()(mux)

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "GET /things/{id}", "418"))
	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "GET /things/{id}", "418"))
	assert.Equal(t, 2.0, after-before)

	unmatched := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "unmatched", "404"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Zero(t, testutil.ToFloat64(RequestInFlight))
}

func TestTrackAuthEvents(t *testing.T) {
	b := session.NewBroker()
	stop := TrackAuthEvents(b)

	before := testutil.ToFloat64(AuthEvents.WithLabelValues(string(session.SignedIn)))
	b.Publish(session.AuthEvent{Type: session.SignedIn, UserID: "u1", At: time.Now()})
	assert.Equal(t, before+1, testutil.ToFloat64(AuthEvents.WithLabelValues(string(session.SignedIn))))

	stop()
	b.Publish(session.AuthEvent{Type: session.SignedIn, UserID: "u1", At: time.Now()})
	assert.Equal(t, before+1, testutil.ToFloat64(AuthEvents.WithLabelValues(string(session.SignedIn))))
}

func TestHandler_Exposes(t *testing.T) {
	RequestInFlight.Set(0)
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "weddingplanner_http_requests_in_flight"))
}
