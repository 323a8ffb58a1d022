package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateBudgetItemRequest is the request body for POST /events/{eventID}/budget.
type CreateBudgetItemRequest struct {
	Category string   `json:"category"`
	Budgeted float64  `json:"budgeted"`
	Spent    float64  `json:"spent"`
	Vendors  []string `json:"vendors"`
}

// Validate implements Validator.
func (c CreateBudgetItemRequest) Validate() []string {
	var errs []string
	if blank(c.Category) {
		errs = append(errs, "category is required")
	}
	if c.Budgeted < 0 || c.Spent < 0 {
		errs = append(errs, "budgeted and spent must be non-negative")
	}
	return errs
}

// UpdateBudgetItemRequest is the request body for PATCH /budget/{itemID}.
// remaining is derived and cannot be set directly.
type UpdateBudgetItemRequest struct {
	Category *string   `json:"category"`
	Budgeted *float64  `json:"budgeted"`
	Spent    *float64  `json:"spent"`
	Vendors  *[]string `json:"vendors"`
}

// Validate implements Validator.
func (u UpdateBudgetItemRequest) Validate() []string {
	var errs []string
	if blankPtr(u.Category) {
		errs = append(errs, "category cannot be empty")
	}
	if negative(u.Budgeted) || negative(u.Spent) {
		errs = append(errs, "budgeted and spent must be non-negative")
	}
	return errs
}

// BudgetItemSuccessResponse is the success envelope for a single budget item.
type BudgetItemSuccessResponse struct {
	Data  *domain.BudgetItem `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// BudgetItemListSuccessResponse is the success envelope for budget item lists.
type BudgetItemListSuccessResponse struct {
	Data  []*domain.BudgetItem `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// BudgetSummarySuccessResponse is the success envelope for the budget summary.
type BudgetSummarySuccessResponse struct {
	Data  domain.BudgetSummary `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// BudgetAlertsSuccessResponse is the success envelope for budget alerts.
type BudgetAlertsSuccessResponse struct {
	Data  []domain.BudgetAlert `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// BudgetController handles event budgets.
type BudgetController struct {
	Logger  *slog.Logger
	Service domain.BudgetService
}

// NewBudgetController creates a BudgetController with the given logger and service.
func NewBudgetController(logger *slog.Logger, svc domain.BudgetService) *BudgetController {
	return &BudgetController{Logger: logger, Service: svc}
}

// ListItems godoc
// @Summary List an event's budget items
// @Description Ordered by category.
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.BudgetItemListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/budget [get]
func (c *BudgetController) ListItems(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	items, err := c.Service.ListItems(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// CreateItem godoc
// @Summary Add a budget item
// @Description remaining is set to budgeted minus spent.
// @Tags budget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateBudgetItemRequest true "Budget item"
// @Success 201 {object} controllers.BudgetItemSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/budget [post]
func (c *BudgetController) CreateItem(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateBudgetItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item := &domain.BudgetItem{
		EventID:  eventID,
		Category: req.Category,
		Budgeted: req.Budgeted,
		Spent:    req.Spent,
		Vendors:  req.Vendors,
	}
	if err := c.Service.CreateItem(r.Context(), actor, item); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

// Summary godoc
// @Summary Budget summary for an event
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.BudgetSummarySuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/budget/summary [get]
func (c *BudgetController) Summary(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	summary, err := c.Service.Summary(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// Alerts godoc
// @Summary Budget alerts for an event
// @Description warning above 90% of an item's budget, error above 100%.
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.BudgetAlertsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/budget/alerts [get]
func (c *BudgetController) Alerts(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	alerts, err := c.Service.Alerts(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, alerts)
}

// UpdateItem godoc
// @Summary Update a budget item
// @Description remaining is recomputed only when budgeted or spent change.
// @Tags budget
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Budget item ID (UUID)"
// @Param body body UpdateBudgetItemRequest true "Fields to update"
// @Success 200 {object} controllers.BudgetItemSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /budget/{itemID} [patch]
func (c *BudgetController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathUUID(w, r, "itemID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateBudgetItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.Service.UpdateItem(r.Context(), actor, itemID, domain.BudgetItemPatch{
		Category: req.Category,
		Budgeted: req.Budgeted,
		Spent:    req.Spent,
		Vendors:  req.Vendors,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete a budget item
// @Tags budget
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Budget item ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /budget/{itemID} [delete]
func (c *BudgetController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathUUID(w, r, "itemID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteItem(r.Context(), actor, itemID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
