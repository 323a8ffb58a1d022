package controllers

import (
	"net/http"
	"strings"
	"time"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
	"weddingplanner/internal/session"
)

// StatusResponse is returned by endpoints that have nothing else to report.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success envelope for StatusResponse.
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

var deletedResponse = StatusResponse{Status: "deleted"}

// actorFrom returns the authenticated caller or writes a 401.
func actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok || s.UserID == "" {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Actor{}, false
	}
	return s.Actor(), true
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func blankPtr(s *string) bool { return s != nil && blank(*s) }

func negative(v *float64) bool { return v != nil && *v < 0 }

func trimmedOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func timeOrNil(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}
