package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
	"weddingplanner/internal/session"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	coupleID = "0b6f5a52-3f7e-4c57-9a3e-1d2b3c4d5e6f"
	adminID  = "9e8d7c6b-5a49-4382-b1a0-f1e2d3c4b5a6"
	eventID  = "4a1e2b3c-5d6f-4789-8abc-def012345678"
	itemID   = "7c1d2e3f-4a5b-4c6d-8e7f-901234567890"
)

func withActor(req *http.Request, userID string, role domain.Role) *http.Request {
	return req.WithContext(session.WithSession(req.Context(), session.Session{UserID: userID, Role: role}))
}

// decodeEnvelope checks the JSON envelope and, on success, decodes data into dest.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw), "response must be valid JSON envelope")
	if raw.Error == nil && dest != nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}
