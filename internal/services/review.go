package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type reviewService struct {
	reviewRepo     domain.ReviewRepository
	vendorRepo     domain.VendorRepository
	bookingRepo    domain.BookingRepository
	vendors        domain.VendorService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewReviewService creates a ReviewService. vendors is used to invalidate the cached directory after rating changes.
func NewReviewService(
	reviewRepo domain.ReviewRepository,
	vendorRepo domain.VendorRepository,
	bookingRepo domain.BookingRepository,
	vendors domain.VendorService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		vendorRepo:     vendorRepo,
		bookingRepo:    bookingRepo,
		vendors:        vendors,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, vendorID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reviews, err := s.reviewRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview records a 1..5 rating. The review is verified when the reviewer has a completed booking with the vendor.
func (s *reviewService) CreateReview(ctx context.Context, actor domain.Actor, review *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	if review.VendorID == actor.UserID {
		return fmt.Errorf("%w: vendors cannot review themselves", domain.ErrForbidden)
	}
	if _, err := s.vendorRepo.GetByID(ctx, review.VendorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown vendor", domain.ErrInvalidInput)
		}
		return fmt.Errorf("get vendor: %w", err)
	}
	verified, err := s.bookingRepo.HasCompleted(ctx, review.VendorID, actor.UserID)
	if err != nil {
		return fmt.Errorf("check booking: %w", err)
	}
	review.UserID = actor.UserID
	review.Comment = strings.TrimSpace(review.Comment)
	review.IsVerified = verified
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: vendor already reviewed", domain.ErrConflict)
		}
		return fmt.Errorf("create review: %w", err)
	}
	if verified {
		s.refreshRating(ctx, review.VendorID)
	}
	return nil
}

func (s *reviewService) SetVerified(ctx context.Context, actor domain.Actor, id string, verified bool) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	review, err := s.reviewRepo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, passThrough("verify review", err)
	}
	s.refreshRating(ctx, review.VendorID)
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return passThrough("get review", err)
	}
	if !actor.CanManage(review.UserID) {
		return domain.ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return passThrough("delete review", err)
	}
	if review.IsVerified {
		s.refreshRating(ctx, review.VendorID)
	}
	return nil
}

// RecomputeVendorRating stores the mean of the vendor's verified reviews.
func (s *reviewService) RecomputeVendorRating(ctx context.Context, vendorID string) (domain.VendorRating, error) {
	reviews, err := s.reviewRepo.ListVerifiedByVendor(ctx, vendorID)
	if err != nil {
		return domain.VendorRating{}, fmt.Errorf("list verified reviews: %w", err)
	}
	rating := RateVendor(reviews)
	if err := s.vendorRepo.SetRating(ctx, vendorID, rating.Rating, rating.ReviewCount); err != nil {
		return domain.VendorRating{}, passThrough("set vendor rating", err)
	}
	if s.vendors != nil {
		s.vendors.InvalidateDirectory(ctx)
	}
	return rating, nil
}

func (s *reviewService) refreshRating(ctx context.Context, vendorID string) {
	if _, err := s.RecomputeVendorRating(ctx, vendorID); err != nil {
		s.logger.ErrorContext(ctx, "vendor rating recompute failed", "vendor_id", vendorID, "err", err)
	}
}
