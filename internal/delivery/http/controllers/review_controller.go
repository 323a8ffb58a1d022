package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateReviewRequest is the request body for POST /vendors/{vendorID}/reviews.
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (c CreateReviewRequest) Validate() []string {
	if c.Rating < 1 || c.Rating > 5 {
		return []string{"rating must be between 1 and 5"}
	}
	return nil
}

// VerifyReviewRequest is the request body for PUT /reviews/{reviewID}/verified.
type VerifyReviewRequest struct {
	Verified bool `json:"verified"`
}

// ReviewSuccessResponse is the success envelope for a single review.
type ReviewSuccessResponse struct {
	Data  *domain.Review    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReviewListSuccessResponse is the success envelope for review lists.
type ReviewListSuccessResponse struct {
	Data  []*domain.Review  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReviewController handles vendor reviews.
type ReviewController struct {
	Logger  *slog.Logger
	Service domain.ReviewService
}

// NewReviewController creates a ReviewController with the given logger and service.
func NewReviewController(logger *slog.Logger, svc domain.ReviewService) *ReviewController {
	return &ReviewController{Logger: logger, Service: svc}
}

// ListReviews godoc
// @Summary List a vendor's reviews
// @Description Newest first.
// @Tags reviews
// @Produce json
// @Param vendorID path string true "Vendor ID (UUID)"
// @Success 200 {object} controllers.ReviewListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /vendors/{vendorID}/reviews [get]
func (c *ReviewController) ListReviews(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	reviews, err := c.Service.ListReviews(r.Context(), vendorID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reviews)
}

// CreateReview godoc
// @Summary Review a vendor
// @Description One review per vendor and user. Reviews backed by a completed booking are verified and count toward the rating.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vendorID path string true "Vendor ID (UUID)"
// @Param body body CreateReviewRequest true "Review"
// @Success 201 {object} controllers.ReviewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already reviewed)"
// @Router /vendors/{vendorID}/reviews [post]
func (c *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := helpers.PathUUID(w, r, "vendorID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	review := &domain.Review{VendorID: vendorID, Rating: req.Rating, Comment: req.Comment}
	if err := c.Service.CreateReview(r.Context(), actor, review); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, review)
}

// SetVerified godoc
// @Summary Verify or unverify a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reviewID path string true "Review ID (UUID)"
// @Param body body VerifyReviewRequest true "Verified flag"
// @Success 200 {object} controllers.ReviewSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (admin only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /reviews/{reviewID}/verified [put]
func (c *ReviewController) SetVerified(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := helpers.PathUUID(w, r, "reviewID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req VerifyReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	review, err := c.Service.SetVerified(r.Context(), actor, reviewID, req.Verified)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, review)
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param reviewID path string true "Review ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /reviews/{reviewID} [delete]
func (c *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := helpers.PathUUID(w, r, "reviewID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteReview(r.Context(), actor, reviewID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
