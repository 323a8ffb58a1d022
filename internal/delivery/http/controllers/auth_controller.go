package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // optional: couple, vendor, guest or general (default)
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if role := domain.Role(strings.TrimSpace(strings.ToLower(s.Role))); role != "" && (!role.Valid() || role == domain.RoleAdmin) {
		errs = append(errs, "role must be one of couple, vendor, guest, general")
	}
	return errs
}

// SignInRequest is the request body for POST /auth/login
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l SignInRequest) Validate() []string {
	var errs []string
	if blank(l.Email) {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthSessionSuccessResponse is the success envelope for sign-up, sign-in and session lookup.
type AuthSessionSuccessResponse struct {
	Data  *domain.AuthSession `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// AuthController handles identity endpoints.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// SignUp godoc
// @Summary Sign up
// @Description Creates an identity and its profile and returns a session token. Admin accounts cannot be created here.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.AuthSessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role := domain.Role(strings.TrimSpace(strings.ToLower(req.Role)))
	sess, err := c.Service.SignUp(r.Context(), req.Email, req.Password, strings.TrimSpace(req.Name), role)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sess)
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticates with email and password. Returns a JWT and the caller's profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} controllers.AuthSessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sess, err := c.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sess)
}

// SignOut godoc
// @Summary Sign out
// @Description Revokes the bearer token for the rest of its lifetime.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/logout [post]
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, err.Error())
		return
	}
	if err := c.Service.SignOut(r.Context(), token); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "signed_out"})
}

// GetSession godoc
// @Summary Current session
// @Description Returns the verified session for the bearer token. profile is null when it cannot be loaded.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AuthSessionSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/session [get]
func (c *AuthController) GetSession(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, err.Error())
		return
	}
	sess, err := c.Service.GetSession(r.Context(), token)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sess)
}
