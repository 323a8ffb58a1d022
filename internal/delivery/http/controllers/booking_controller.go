package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
type CreateBookingRequest struct {
	VendorID string     `json:"vendor_id"`
	Service  string     `json:"service"`
	Date     *time.Time `json:"date"`
	Amount   float64    `json:"amount"`
	Notes    string     `json:"notes"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if !helpers.IsUUID(c.VendorID) {
		errs = append(errs, "vendor_id must be a UUID")
	}
	if blank(c.Service) {
		errs = append(errs, "service is required")
	}
	if c.Amount < 0 {
		errs = append(errs, "amount must be non-negative")
	}
	return errs
}

// UpdateBookingRequest is the request body for PATCH /bookings/{bookingID}.
type UpdateBookingRequest domain.BookingPatch

// Validate implements Validator.
func (u UpdateBookingRequest) Validate() []string {
	var errs []string
	if blankPtr(u.Service) {
		errs = append(errs, "service cannot be empty")
	}
	if negative(u.Amount) {
		errs = append(errs, "amount must be non-negative")
	}
	if u.Status != nil && !u.Status.Valid() {
		errs = append(errs, "unknown status")
	}
	return errs
}

// BookingSuccessResponse is the success envelope for a single booking.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingListSuccessResponse is the success envelope for booking lists.
type BookingListSuccessResponse struct {
	Data  []*domain.Booking `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingController handles vendor bookings.
type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

// NewBookingController creates a BookingController with the given logger and service.
func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc}
}

// ListMine godoc
// @Summary List my bookings
// @Description Vendors see bookings made with them; everyone else sees bookings they requested.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BookingListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /bookings [get]
func (c *BookingController) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	bookings, err := c.Service.ListMine(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// ListByEvent godoc
// @Summary List an event's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.BookingListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	bookings, err := c.Service.ListByEvent(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// ListByVendor godoc
// @Summary List a vendor's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.BookingListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /vendors/{vendorID}/bookings [get]
func (c *BookingController) ListByVendor(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	bookings, err := c.Service.ListByVendor(r.Context(), actor, vendorID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// CreateBooking godoc
// @Summary Request a vendor booking
// @Description The event owner is recorded as the couple. Status always starts as inquiry and the vendor is emailed.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateBookingRequest true "Booking"
// @Success 201 {object} controllers.BookingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking := &domain.Booking{
		EventID:  eventID,
		VendorID: req.VendorID,
		Service:  req.Service,
		Date:     timeOrNil(req.Date),
		Amount:   req.Amount,
		Notes:    req.Notes,
	}
	if err := c.Service.CreateBooking(r.Context(), actor, booking); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// UpdateBooking godoc
// @Summary Update a booking
// @Description The couple, the vendor or an admin may update. Any valid status may follow any other, but only the vendor or an admin may set completed.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Param body body UpdateBookingRequest true "Fields to update"
// @Success 200 {object} controllers.BookingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /bookings/{bookingID} [patch]
func (c *BookingController) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := helpers.PathUUID(w, r, "bookingID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.UpdateBooking(r.Context(), actor, bookingID, domain.BookingPatch(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := helpers.PathUUID(w, r, "bookingID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteBooking(r.Context(), actor, bookingID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
