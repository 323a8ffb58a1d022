package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateGuestRequest is the request body for POST /events/{eventID}/guests.
type CreateGuestRequest struct {
	Name                string            `json:"name"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone"`
	RSVPStatus          domain.RSVPStatus `json:"rsvp_status"`
	PlusOne             bool              `json:"plus_one"`
	PlusOneName         string            `json:"plus_one_name"`
	DietaryRestrictions string            `json:"dietary_restrictions"`
	Notes               string            `json:"notes"`
}

// Validate implements Validator.
func (c CreateGuestRequest) Validate() []string {
	var errs []string
	if blank(c.Name) {
		errs = append(errs, "name is required")
	}
	if c.RSVPStatus != "" && !c.RSVPStatus.Valid() {
		errs = append(errs, "rsvp_status must be pending, attending or declined")
	}
	return errs
}

// UpdateGuestRequest is the request body for PATCH /guests/{guestID}.
type UpdateGuestRequest domain.GuestPatch

// Validate implements Validator.
func (u UpdateGuestRequest) Validate() []string {
	var errs []string
	if blankPtr(u.Name) {
		errs = append(errs, "name cannot be empty")
	}
	if u.RSVPStatus != nil && !u.RSVPStatus.Valid() {
		errs = append(errs, "rsvp_status must be pending, attending or declined")
	}
	if u.TableNumber != nil && u.ClearTable {
		errs = append(errs, "table_number and clear_table are mutually exclusive")
	}
	return errs
}

// RSVPRequest is the request body for POST /guests/{guestID}/rsvp.
type RSVPRequest struct {
	Status      domain.RSVPStatus `json:"status"`
	PlusOne     *bool             `json:"plus_one"`
	PlusOneName *string           `json:"plus_one_name"`
}

// Validate implements Validator.
func (r RSVPRequest) Validate() []string {
	if !r.Status.Valid() {
		return []string{"status must be pending, attending or declined"}
	}
	return nil
}

// GuestSuccessResponse is the success envelope for a single guest.
type GuestSuccessResponse struct {
	Data  *domain.Guest     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GuestListSuccessResponse is the success envelope for guest lists.
type GuestListSuccessResponse struct {
	Data  []*domain.Guest   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RSVPStatsSuccessResponse is the success envelope for RSVP stats.
type RSVPStatsSuccessResponse struct {
	Data  domain.RSVPStats  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GuestController handles guest lists and RSVPs.
type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

// NewGuestController creates a GuestController with the given logger and service.
func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{Logger: logger, Service: svc}
}

// ListGuests godoc
// @Summary List an event's guests
// @Description Ordered by name.
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GuestListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	guests, err := c.Service.ListGuests(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}

// CreateGuest godoc
// @Summary Add a guest
// @Description rsvp_status defaults to pending.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateGuestRequest true "Guest data"
// @Success 201 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/guests [post]
func (c *GuestController) CreateGuest(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest := &domain.Guest{
		EventID:             eventID,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		RSVPStatus:          req.RSVPStatus,
		PlusOne:             req.PlusOne,
		PlusOneName:         req.PlusOneName,
		DietaryRestrictions: req.DietaryRestrictions,
		Notes:               req.Notes,
	}
	if err := c.Service.CreateGuest(r.Context(), actor, guest); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// RSVPStats godoc
// @Summary RSVP stats for an event
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RSVPStatsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/guests/stats [get]
func (c *GuestController) RSVPStats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.RSVPStats(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// UpdateGuest godoc
// @Summary Update a guest
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest ID (UUID)"
// @Param body body UpdateGuestRequest true "Fields to update"
// @Success 200 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guests/{guestID} [patch]
func (c *GuestController) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	guestID, ok := helpers.PathUUID(w, r, "guestID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest, err := c.Service.UpdateGuest(r.Context(), actor, guestID, domain.GuestPatch(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// RespondRSVP godoc
// @Summary Record a guest's RSVP
// @Description Declining or dropping the plus-one clears plus_one_name.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest ID (UUID)"
// @Param body body RSVPRequest true "RSVP"
// @Success 200 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guests/{guestID}/rsvp [post]
func (c *GuestController) RespondRSVP(w http.ResponseWriter, r *http.Request) {
	guestID, ok := helpers.PathUUID(w, r, "guestID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req RSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest, err := c.Service.RespondRSVP(r.Context(), actor, guestID, req.Status, req.PlusOne, req.PlusOneName)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// DeleteGuest godoc
// @Summary Remove a guest
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guests/{guestID} [delete]
func (c *GuestController) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	guestID, ok := helpers.PathUUID(w, r, "guestID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteGuest(r.Context(), actor, guestID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
