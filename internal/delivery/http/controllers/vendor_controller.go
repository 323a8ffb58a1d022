package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateVendorRequest is the request body for POST /vendors.
type CreateVendorRequest struct {
	ID            string   `json:"id"` // admins only; vendors always create their own profile
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Website       string   `json:"website"`
	StartingPrice float64  `json:"starting_price"`
	Services      []string `json:"services"`
}

// Validate implements Validator.
func (c CreateVendorRequest) Validate() []string {
	var errs []string
	if blank(c.Name) {
		errs = append(errs, "name is required")
	}
	if blank(c.Category) {
		errs = append(errs, "category is required")
	}
	if c.StartingPrice < 0 {
		errs = append(errs, "starting_price must be non-negative")
	}
	if c.ID != "" && !helpers.IsUUID(c.ID) {
		errs = append(errs, "id must be a UUID")
	}
	if e := strings.TrimSpace(c.Email); e != "" && !emailRegexp.MatchString(e) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// UpdateVendorRequest is the request body for PATCH /vendors/{vendorID}.
type UpdateVendorRequest domain.VendorPatch

// Validate implements Validator.
func (u UpdateVendorRequest) Validate() []string {
	var errs []string
	if blankPtr(u.Name) {
		errs = append(errs, "name cannot be empty")
	}
	if blankPtr(u.Category) {
		errs = append(errs, "category cannot be empty")
	}
	if negative(u.StartingPrice) {
		errs = append(errs, "starting_price must be non-negative")
	}
	if e := trimmedOrEmpty(u.Email); e != "" && !emailRegexp.MatchString(e) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// ApprovalRequest is the request body for approval toggles.
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// FeaturedRequest is the request body for PUT /vendors/{vendorID}/featured.
type FeaturedRequest struct {
	Featured bool `json:"featured"`
}

// VendorSuccessResponse is the success envelope for a single vendor.
type VendorSuccessResponse struct {
	Data  *domain.Vendor    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VendorListSuccessResponse is the success envelope for vendor lists.
type VendorListSuccessResponse struct {
	Data  []*domain.Vendor  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VendorController handles the vendor directory and vendor profiles.
type VendorController struct {
	Logger  *slog.Logger
	Service domain.VendorService
}

// NewVendorController creates a VendorController with the given logger and service.
func NewVendorController(logger *slog.Logger, svc domain.VendorService) *VendorController {
	return &VendorController{Logger: logger, Service: svc}
}

// ListVendors godoc
// @Summary Browse the vendor directory
// @Description Ordered by rating, then review count. Only approved vendors are listed unless approved=false.
// @Tags vendors
// @Produce json
// @Param category query string false "Category (case-insensitive)"
// @Param approved query bool false "Only approved vendors (default true)"
// @Param featured query bool false "Only featured vendors"
// @Success 200 {object} controllers.VendorListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /vendors [get]
func (c *VendorController) ListVendors(w http.ResponseWriter, r *http.Request) {
	filter := domain.VendorFilter{
		Category:     strings.TrimSpace(r.URL.Query().Get("category")),
		ApprovedOnly: true,
	}
	if v := helpers.ParseBoolQuery(r, "approved"); v != nil {
		filter.ApprovedOnly = *v
	}
	if v := helpers.ParseBoolQuery(r, "featured"); v != nil {
		filter.FeaturedOnly = *v
	}
	vendors, err := c.Service.ListVendors(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendors)
}

// GetVendor godoc
// @Summary Get a vendor
// @Tags vendors
// @Produce json
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.VendorSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vendors/{vendorID} [get]
func (c *VendorController) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	vendor, err := c.Service.GetVendor(r.Context(), vendorID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendor)
}

// CreateProfile godoc
// @Summary Create a vendor profile
// @Description Vendors create their own profile (id = caller). New profiles await admin approval.
// @Tags vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateVendorRequest true "Vendor profile"
// @Success 201 {object} controllers.VendorSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not a vendor)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (profile exists)"
// @Router /vendors [post]
func (c *VendorController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateVendorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	vendor := &domain.Vendor{
		ID:            req.ID,
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		Location:      req.Location,
		Email:         req.Email,
		Phone:         req.Phone,
		Website:       req.Website,
		StartingPrice: req.StartingPrice,
		Services:      req.Services,
	}
	if err := c.Service.CreateProfile(r.Context(), actor, vendor); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, vendor)
}

// UpdateProfile godoc
// @Summary Update a vendor profile
// @Tags vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Param body body UpdateVendorRequest true "Fields to update"
// @Success 200 {object} controllers.VendorSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vendors/{vendorID} [patch]
func (c *VendorController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateVendorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	vendor, err := c.Service.UpdateProfile(r.Context(), actor, vendorID, domain.VendorPatch(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendor)
}

// DeleteVendor godoc
// @Summary Delete a vendor profile
// @Tags vendors
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vendors/{vendorID} [delete]
func (c *VendorController) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteVendor(r.Context(), actor, vendorID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}

// SetApproval godoc
// @Summary Approve or unapprove a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Param body body ApprovalRequest true "Approval flag"
// @Success 200 {object} controllers.VendorSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vendors/{vendorID}/approval [put]
func (c *VendorController) SetApproval(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req ApprovalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	vendor, err := c.Service.SetApproval(r.Context(), actor, vendorID, req.Approved)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendor)
}

// SetFeatured godoc
// @Summary Feature or unfeature a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Param body body FeaturedRequest true "Featured flag"
// @Success 200 {object} controllers.VendorSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vendors/{vendorID}/featured [put]
func (c *VendorController) SetFeatured(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req FeaturedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	vendor, err := c.Service.SetFeatured(r.Context(), actor, vendorID, req.Featured)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vendor)
}
