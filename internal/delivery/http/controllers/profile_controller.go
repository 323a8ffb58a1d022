package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
	"weddingplanner/internal/session"
)

// CreateProfileRequest is the request body for POST /profile.
type CreateProfileRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Validate implements Validator.
func (p CreateProfileRequest) Validate() []string {
	var errs []string
	role := domain.Role(strings.ToLower(strings.TrimSpace(p.Role)))
	if role == domain.RoleAdmin {
		errs = append(errs, "admin profiles cannot be created")
	}
	return errs
}

// UpdateProfileRequest is the request body for PATCH /profile. Both fields are optional.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate implements Validator.
func (u UpdateProfileRequest) Validate() []string {
	var errs []string
	if u.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*u.Email))
		if email == "" {
			errs = append(errs, "email cannot be empty")
		} else if !emailRegexp.MatchString(email) {
			errs = append(errs, "invalid email format")
		}
	}
	if blankPtr(u.Name) {
		errs = append(errs, "name cannot be empty")
	}
	return errs
}

// ProfileSuccessResponse is the success envelope for profile endpoints.
type ProfileSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProfileController serves the caller's own profile.
type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

// NewProfileController creates a ProfileController with the given logger and service.
func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{Logger: logger, Service: svc}
}

// GetProfile godoc
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no profile yet)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetCurrentUserProfile(r.Context(), actor.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if user == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// CreateProfile godoc
// @Summary Create my profile
// @Description Idempotent: an existing profile is returned unchanged. Unknown roles become general.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProfileRequest true "Profile data"
// @Success 201 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [post]
func (c *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.CreateUserProfile(r.Context(), s.UserID, domain.ProfileInput{
		Name:  strings.TrimSpace(req.Name),
		Email: s.Email,
		Role:  domain.Role(strings.ToLower(strings.TrimSpace(req.Role))),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Partial update of name and email. The role cannot be changed.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile [patch]
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.UpdateProfile(r.Context(), actor.UserID, domain.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
