package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateGiftRequest is the request body for POST /events/{eventID}/registry.
type CreateGiftRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Validate implements Validator.
func (c CreateGiftRequest) Validate() []string {
	var errs []string
	if blank(c.Name) {
		errs = append(errs, "name is required")
	}
	if c.Price < 0 {
		errs = append(errs, "price must be non-negative")
	}
	if c.Quantity < 0 {
		errs = append(errs, "quantity must be non-negative")
	}
	return errs
}

// UpdateGiftRequest is the request body for PATCH /registry/{itemID}.
type UpdateGiftRequest domain.GiftRegistryPatch

// Validate implements Validator.
func (u UpdateGiftRequest) Validate() []string {
	var errs []string
	if blankPtr(u.Name) {
		errs = append(errs, "name cannot be empty")
	}
	if negative(u.Price) {
		errs = append(errs, "price must be non-negative")
	}
	if (u.Quantity != nil && *u.Quantity < 0) || (u.Purchased != nil && *u.Purchased < 0) {
		errs = append(errs, "quantity and purchased must be non-negative")
	}
	return errs
}

// PurchaseGiftRequest is the request body for POST /registry/{itemID}/purchase.
type PurchaseGiftRequest struct {
	Quantity int `json:"quantity"`
}

// Validate implements Validator.
func (p PurchaseGiftRequest) Validate() []string {
	if p.Quantity < 1 {
		return []string{"quantity must be at least 1"}
	}
	return nil
}

// GiftSuccessResponse is the success envelope for a single registry item.
type GiftSuccessResponse struct {
	Data  *domain.GiftRegistryItem `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// GiftListSuccessResponse is the success envelope for registry lists.
type GiftListSuccessResponse struct {
	Data  []*domain.GiftRegistryItem `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// RegistryController handles gift registries.
type RegistryController struct {
	Logger  *slog.Logger
	Service domain.GiftRegistryService
}

// NewRegistryController creates a RegistryController with the given logger and service.
func NewRegistryController(logger *slog.Logger, svc domain.GiftRegistryService) *RegistryController {
	return &RegistryController{Logger: logger, Service: svc}
}

// ListItems godoc
// @Summary List an event's registry
// @Description Visible to the owner, admins, and anyone signed in when the event is public.
// @Tags registry
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GiftListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registry [get]
func (c *RegistryController) ListItems(w http.ResponseWriter, r *http.Request) {
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
// @Summary Add a registry item
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateGiftRequest true "Registry item"
// @Success 201 {object} controllers.GiftSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registry [post]
func (c *RegistryController) CreateItem(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateGiftRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item := &domain.GiftRegistryItem{
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if err := c.Service.CreateItem(r.Context(), actor, item); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update a registry item
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Registry item ID (UUID)"
// @Param body body UpdateGiftRequest true "Fields to update"
// @Success 200 {object} controllers.GiftSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registry/{itemID} [patch]
func (c *RegistryController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathUUID(w, r, "itemID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateGiftRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.Service.UpdateItem(r.Context(), actor, itemID, domain.GiftRegistryPatch(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// Purchase godoc
// @Summary Mark registry units as purchased
// @Description Fails with bad_request when the purchase would exceed the requested quantity.
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Registry item ID (UUID)"
// @Param body body PurchaseGiftRequest true "Units bought"
// @Success 200 {object} controllers.GiftSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registry/{itemID}/purchase [post]
func (c *RegistryController) Purchase(w http.ResponseWriter, r *http.Request) {
	itemID, ok := helpers.PathUUID(w, r, "itemID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req PurchaseGiftRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.Service.Purchase(r.Context(), actor, itemID, req.Quantity)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete a registry item
// @Tags registry
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Registry item ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registry/{itemID} [delete]
func (c *RegistryController) DeleteItem(w http.ResponseWriter, r *http.Request) {
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
