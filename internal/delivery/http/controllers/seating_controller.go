package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateSeatingPlanRequest is the request body for POST /events/{eventID}/seating-plans.
type CreateSeatingPlanRequest struct {
	Name   string         `json:"name"`
	Layout string         `json:"layout"`
	Tables []domain.Table `json:"tables"`
}

// Validate implements Validator.
func (c CreateSeatingPlanRequest) Validate() []string {
	var errs []string
	if blank(c.Name) {
		errs = append(errs, "name is required")
	}
	return errs
}

// UpdateSeatingPlanRequest is the request body for PATCH /seating-plans/{planID}.
type UpdateSeatingPlanRequest domain.SeatingPlanPatch

// Validate implements Validator.
func (u UpdateSeatingPlanRequest) Validate() []string {
	if blankPtr(u.Name) {
		return []string{"name cannot be empty"}
	}
	return nil
}

// AssignTableRequest is the request body for PUT /guests/{guestID}/table. A null table_number unseats the guest.
type AssignTableRequest struct {
	TableNumber *int `json:"table_number"`
}

// Validate implements Validator.
func (a AssignTableRequest) Validate() []string {
	if a.TableNumber != nil && *a.TableNumber < 1 {
		return []string{"table_number must be positive"}
	}
	return nil
}

// ClearAssignmentsResponse reports how many guests were unseated.
type ClearAssignmentsResponse struct {
	Cleared int `json:"cleared"`
}

// SeatingPlanSuccessResponse is the success envelope for a single seating plan.
type SeatingPlanSuccessResponse struct {
	Data  *domain.SeatingPlan `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SeatingPlanListSuccessResponse is the success envelope for seating plan lists.
type SeatingPlanListSuccessResponse struct {
	Data  []*domain.SeatingPlan `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// AutoAssignSuccessResponse is the success envelope for auto-assign.
type AutoAssignSuccessResponse struct {
	Data  *domain.AutoAssignResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ClearAssignmentsSuccessResponse is the success envelope for clearing assignments.
type ClearAssignmentsSuccessResponse struct {
	Data  ClearAssignmentsResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// SeatingController handles seating plans and table assignments.
type SeatingController struct {
	Logger  *slog.Logger
	Service domain.SeatingService
}

// NewSeatingController creates a SeatingController with the given logger and service.
func NewSeatingController(logger *slog.Logger, svc domain.SeatingService) *SeatingController {
	return &SeatingController{Logger: logger, Service: svc}
}

// ListPlans godoc
// @Summary List an event's seating plans
// @Tags seating
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.SeatingPlanListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/seating-plans [get]
func (c *SeatingController) ListPlans(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	plans, err := c.Service.ListPlans(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, plans)
}

// CreatePlan godoc
// @Summary Create a seating plan
// @Description Table numbers must be positive and unique; every table needs at least one seat.
// @Tags seating
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateSeatingPlanRequest true "Seating plan"
// @Success 201 {object} controllers.SeatingPlanSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/seating-plans [post]
func (c *SeatingController) CreatePlan(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateSeatingPlanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	plan := &domain.SeatingPlan{EventID: eventID, Name: req.Name, Layout: req.Layout, Tables: req.Tables}
	if err := c.Service.CreatePlan(r.Context(), actor, plan); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, plan)
}

// ClearAssignments godoc
// @Summary Unseat every guest of an event
// @Tags seating
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ClearAssignmentsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/seating-assignments [delete]
func (c *SeatingController) ClearAssignments(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	n, err := c.Service.ClearAssignments(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ClearAssignmentsResponse{Cleared: n})
}

// GetPlan godoc
// @Summary Get a seating plan
// @Tags seating
// @Produce json
// @Security BearerAuth
// @Param planID path string true "Seating plan ID (UUID)"
// @Success 200 {object} controllers.SeatingPlanSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /seating-plans/{planID} [get]
func (c *SeatingController) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := helpers.PathUUID(w, r, "planID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	plan, err := c.Service.GetPlan(r.Context(), actor, planID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, plan)
}

// UpdatePlan godoc
// @Summary Update a seating plan
// @Description tables, when present, replaces the whole array.
// @Tags seating
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planID path string true "Seating plan ID (UUID)"
// @Param body body UpdateSeatingPlanRequest true "Fields to update"
// @Success 200 {object} controllers.SeatingPlanSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /seating-plans/{planID} [patch]
func (c *SeatingController) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := helpers.PathUUID(w, r, "planID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateSeatingPlanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	plan, err := c.Service.UpdatePlan(r.Context(), actor, planID, domain.SeatingPlanPatch(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, plan)
}

// DeletePlan godoc
// @Summary Delete a seating plan
// @Description Guest table numbers are left as they are.
// @Tags seating
// @Produce json
// @Security BearerAuth
// @Param planID path string true "Seating plan ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /seating-plans/{planID} [delete]
func (c *SeatingController) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := helpers.PathUUID(w, r, "planID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeletePlan(r.Context(), actor, planID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}

// AutoAssign godoc
// @Summary Seat unassigned guests automatically
// @Description Greedy pass over the plan's tables in order. Existing placements are kept and nothing is rebalanced.
// @Tags seating
// @Produce json
// @Security BearerAuth
// @Param planID path string true "Seating plan ID (UUID)"
// @Success 200 {object} controllers.AutoAssignSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /seating-plans/{planID}/auto-assign [post]
func (c *SeatingController) AutoAssign(w http.ResponseWriter, r *http.Request) {
	planID, ok := helpers.PathUUID(w, r, "planID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	result, err := c.Service.AutoAssign(r.Context(), actor, planID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// AssignGuest godoc
// @Summary Seat or unseat one guest
// @Tags seating
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestID path string true "Guest ID (UUID)"
// @Param body body AssignTableRequest true "Table number or null"
// @Success 200 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /guests/{guestID}/table [put]
func (c *SeatingController) AssignGuest(w http.ResponseWriter, r *http.Request) {
	guestID, ok := helpers.PathUUID(w, r, "guestID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req AssignTableRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest, err := c.Service.AssignGuest(r.Context(), actor, guestID, req.TableNumber)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}
