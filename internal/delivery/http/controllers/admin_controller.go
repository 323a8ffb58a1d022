package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// UserPage is a paginated list of users.
type UserPage struct {
	Items      []*domain.User         `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// UserPageSuccessResponse is the success envelope for UserPage.
type UserPageSuccessResponse struct {
	Data  UserPage          `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserSuccessResponse is the success envelope for a single user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PlatformStatsSuccessResponse is the success envelope for platform stats.
type PlatformStatsSuccessResponse struct {
	Data  domain.PlatformStats `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// AdminController handles user administration.
type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

// NewAdminController creates an AdminController with the given logger and service.
func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{Logger: logger, Service: svc}
}

// ListUsers godoc
// @Summary List users
// @Description Newest first. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param approved query bool false "Filter by approval"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.UserPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var filter domain.UserFilter
	if v := r.URL.Query().Get("role"); v != "" {
		role := domain.Role(v)
		if !role.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown role")
			return
		}
		filter.Role = &role
	}
	filter.IsApproved = helpers.ParseBoolQuery(r, "approved")
	page := helpers.ParsePagination(r)

	users, total, err := c.Service.ListUsers(r.Context(), actor, filter, page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UserPage{
		Items:      users,
		Pagination: helpers.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// SetUserApproval godoc
// @Summary Approve or unapprove a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body ApprovalRequest true "Approval flag"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/users/{userID}/approval [put]
func (c *AdminController) SetUserApproval(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathUUID(w, r, "userID")
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
	user, err := c.Service.SetUserApproval(r.Context(), actor, userID, req.Approved)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// PlatformStats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PlatformStatsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/stats [get]
func (c *AdminController) PlatformStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.PlatformStats(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
