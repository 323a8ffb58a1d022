package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// FavoriteStatusResponse reports whether a vendor is a favorite.
type FavoriteStatusResponse struct {
	VendorID   string `json:"vendor_id"`
	IsFavorite bool   `json:"is_favorite"`
}

// FavoriteStatusSuccessResponse is the success envelope for FavoriteStatusResponse.
type FavoriteStatusSuccessResponse struct {
	Data  FavoriteStatusResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// FavoriteIDsSuccessResponse is the success envelope for favorite vendor IDs.
type FavoriteIDsSuccessResponse struct {
	Data  []string          `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FavoriteController handles saved vendors.
type FavoriteController struct {
	Logger  *slog.Logger
	Service domain.FavoriteService
}

// NewFavoriteController creates a FavoriteController with the given logger and service.
func NewFavoriteController(logger *slog.Logger, svc domain.FavoriteService) *FavoriteController {
	return &FavoriteController{Logger: logger, Service: svc}
}

// ListFavorites godoc
// @Summary List my favorite vendors
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.VendorListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /favorites [get]
func (c *FavoriteController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	vendors, err := c.Service.ListFavorites(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendors)
}

// ListFavoriteIDs godoc
// @Summary List my favorite vendor IDs
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.FavoriteIDsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /favorites/ids [get]
func (c *FavoriteController) ListFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	ids, err := c.Service.ListFavoriteIDs(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ids)
}

// IsFavorite godoc
// @Summary Check whether a vendor is a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.FavoriteStatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /favorites/{vendorID} [get]
func (c *FavoriteController) IsFavorite(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	fav, err := c.Service.IsFavorite(r.Context(), actor, vendorID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FavoriteStatusResponse{VendorID: vendorID, IsFavorite: fav})
}

// Add godoc
// @Summary Save a vendor as a favorite
// @Description Idempotent.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.FavoriteStatusSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (vendor)"
// @Router /favorites/{vendorID} [put]
func (c *FavoriteController) Add(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.Add(r.Context(), actor, vendorID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FavoriteStatusResponse{VendorID: vendorID, IsFavorite: true})
}

// Remove godoc
// @Summary Remove a vendor from favorites
// @Description Idempotent.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.FavoriteStatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /favorites/{vendorID} [delete]
func (c *FavoriteController) Remove(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.Remove(r.Context(), actor, vendorID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FavoriteStatusResponse{VendorID: vendorID, IsFavorite: false})
}

// Toggle godoc
// @Summary Toggle a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.FavoriteStatusSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (vendor)"
// @Router /favorites/{vendorID}/toggle [post]
func (c *FavoriteController) Toggle(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	fav, err := c.Service.Toggle(r.Context(), actor, vendorID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FavoriteStatusResponse{VendorID: vendorID, IsFavorite: fav})
}
