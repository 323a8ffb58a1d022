package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CoupleDashboardSuccessResponse is the success envelope for the couple dashboard.
type CoupleDashboardSuccessResponse struct {
	Data  *domain.CoupleDashboard `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// VendorDashboardSuccessResponse is the success envelope for the vendor dashboard.
type VendorDashboardSuccessResponse struct {
	Data  *domain.VendorDashboard `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// GuestDashboardSuccessResponse is the success envelope for the guest dashboard.
type GuestDashboardSuccessResponse struct {
	Data  *domain.GuestDashboard `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// AdminDashboardSuccessResponse is the success envelope for the admin dashboard.
type AdminDashboardSuccessResponse struct {
	Data  *domain.AdminDashboard `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// GeneralDashboardSuccessResponse is the success envelope for the general dashboard.
type GeneralDashboardSuccessResponse struct {
	Data  *domain.GeneralDashboard `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// DashboardController serves the per-role home views.
type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

// NewDashboardController creates a DashboardController with the given logger and service.
func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{Logger: logger, Service: svc}
}

// Couple godoc
// @Summary Couple dashboard
// @Description Lists the caller's events and an overview of the selected one (the first event when event_id is omitted).
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Selected event ID (UUID)"
// @Success 200 {object} controllers.CoupleDashboardSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /dashboard/couple [get]
func (c *DashboardController) Couple(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	eventID := r.URL.Query().Get("event_id")
	if eventID != "" && !helpers.IsUUID(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event_id must be a UUID")
		return
	}
	dash, err := c.Service.Couple(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}

// Vendor godoc
// @Summary Vendor dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.VendorDashboardSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /dashboard/vendor [get]
func (c *DashboardController) Vendor(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	dash, err := c.Service.Vendor(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}

// Guest godoc
// @Summary Guest dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GuestDashboardSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /dashboard/guest [get]
func (c *DashboardController) Guest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	dash, err := c.Service.Guest(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}

// Admin godoc
// @Summary Admin dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AdminDashboardSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /dashboard/admin [get]
func (c *DashboardController) Admin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	dash, err := c.Service.Admin(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}

// General godoc
// @Summary General dashboard
// @Description Public events and featured vendors. No authentication required.
// @Tags dashboard
// @Produce json
// @Success 200 {object} controllers.GeneralDashboardSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard/general [get]
func (c *DashboardController) General(w http.ResponseWriter, r *http.Request) {
	dash, err := c.Service.General(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dash)
}
