package services

import (
	"context"
	"testing"
	"time"

	"weddingplanner/internal/adapters/cache"
	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vendorID = "vendor-1"

var vendorActor = domain.Actor{UserID: vendorID, Role: domain.RoleVendor}

func TestVendorService_ListVendors_Cached(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVendorRepo(
		&domain.Vendor{ID: "v1", Name: "Bloom", Category: "Florist", IsApproved: true},
		&domain.Vendor{ID: "v2", Name: "Snap", Category: "Photography"},
	)
	svc := NewVendorService(repo, cache.NewMemory(), time.Minute, testLogger(), time.Second)
	approved := domain.VendorFilter{ApprovedOnly: true}

	first, err := svc.ListVendors(ctx, approved)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Bloom", first[0].Name)

	_, err = svc.ListVendors(ctx, approved)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// A different filter is a different cache entry.
	all, err := svc.ListVendors(ctx, domain.VendorFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, repo.listCalls)

	// Approval drops every cached listing.
	_, err = svc.SetApproval(ctx, admin, "v2", true)
	require.NoError(t, err)
	after, err := svc.ListVendors(ctx, approved)
	require.NoError(t, err)
	assert.Len(t, after, 2)
	assert.Equal(t, 3, repo.listCalls)
}

func TestVendorService_ListVendors_NoCache(t *testing.T) {
	repo := newFakeVendorRepo(&domain.Vendor{ID: "v1", IsApproved: true})
	svc := NewVendorService(repo, nil, time.Minute, testLogger(), time.Second)

	for range 2 {
		_, err := svc.ListVendors(context.Background(), domain.VendorFilter{})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, repo.listCalls)
}

func TestVendorService_CreateProfile(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		vendor  *domain.Vendor
		wantID  string
		wantErr error
	}{
		{
			name:   "vendor profile keyed by caller",
			actor:  vendorActor,
			vendor: &domain.Vendor{ID: "someone-else", Name: " Bloom ", Category: "Florist", IsApproved: true, Rating: 5},
			wantID: vendorID,
		},
		{
			name:   "admin may choose the id",
			actor:  admin,
			vendor: &domain.Vendor{ID: "v-custom", Name: "Bloom", Category: "Florist"},
			wantID: "v-custom",
		},
		{
			name:    "couples cannot create vendors",
			actor:   owner,
			vendor:  &domain.Vendor{Name: "Bloom", Category: "Florist"},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "missing category",
			actor:   vendorActor,
			vendor:  &domain.Vendor{Name: "Bloom"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "negative price",
			actor:   vendorActor,
			vendor:  &domain.Vendor{Name: "Bloom", Category: "Florist", StartingPrice: -10},
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeVendorRepo()
			svc := NewVendorService(repo, cache.NewMemory(), time.Minute, testLogger(), time.Second)

			err := svc.CreateProfile(context.Background(), tt.actor, tt.vendor)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.byID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, tt.vendor.ID)
			assert.Equal(t, "Bloom", tt.vendor.Name)
			assert.False(t, tt.vendor.IsApproved)
			assert.Zero(t, tt.vendor.Rating)
			assert.Equal(t, []string{}, tt.vendor.Services)
		})
	}
}

func TestVendorService_CreateProfile_Duplicate(t *testing.T) {
	repo := newFakeVendorRepo(&domain.Vendor{ID: vendorID, Name: "Bloom", Category: "Florist"})
	svc := NewVendorService(repo, nil, 0, testLogger(), time.Second)

	err := svc.CreateProfile(context.Background(), vendorActor, &domain.Vendor{Name: "Bloom 2", Category: "Florist"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestVendorService_OwnershipAndFlags(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVendorRepo(&domain.Vendor{ID: vendorID, Name: "Bloom", Category: "Florist"})
	svc := NewVendorService(repo, nil, 0, testLogger(), time.Second)

	_, err := svc.UpdateProfile(ctx, owner, vendorID, domain.VendorPatch{Name: ptr("Mine")})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.UpdateProfile(ctx, vendorActor, vendorID, domain.VendorPatch{StartingPrice: ptr(-1.0)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	updated, err := svc.UpdateProfile(ctx, vendorActor, vendorID, domain.VendorPatch{Name: ptr("Bloom & Co")})
	require.NoError(t, err)
	assert.Equal(t, "Bloom & Co", updated.Name)

	_, err = svc.SetFeatured(ctx, vendorActor, vendorID, true)
	require.ErrorIs(t, err, domain.ErrForbidden)
	featured, err := svc.SetFeatured(ctx, admin, vendorID, true)
	require.NoError(t, err)
	assert.True(t, featured.IsFeatured)
	assert.False(t, featured.IsApproved)

	_, err = svc.GetVendor(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.DeleteVendor(ctx, owner, vendorID), domain.ErrForbidden)
	require.NoError(t, svc.DeleteVendor(ctx, vendorActor, vendorID))
	assert.Empty(t, repo.byID)
}

type reviewFixture struct {
	svc      domain.ReviewService
	vendors  *fakeVendorRepo
	reviews  *fakeReviewRepo
	bookings *fakeBookingRepo
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		vendors:  newFakeVendorRepo(&domain.Vendor{ID: vendorID, Name: "Bloom", IsApproved: true}),
		reviews:  &fakeReviewRepo{},
		bookings: &fakeBookingRepo{},
	}
	vendorSvc := NewVendorService(f.vendors, cache.NewMemory(), time.Minute, testLogger(), time.Second)
	f.svc = NewReviewService(f.reviews, f.vendors, f.bookings, vendorSvc, testLogger(), time.Second)
	return f
}

func TestReviewService_CreateReview(t *testing.T) {
	tests := []struct {
		name         string
		actor        domain.Actor
		review       *domain.Review
		completed    bool
		wantErr      error
		wantVerified bool
	}{
		{name: "unverified without a completed booking", actor: owner, review: &domain.Review{VendorID: vendorID, Rating: 4}},
		{name: "verified with a completed booking", actor: owner, review: &domain.Review{VendorID: vendorID, Rating: 4}, completed: true, wantVerified: true},
		{name: "rating too low", actor: owner, review: &domain.Review{VendorID: vendorID, Rating: 0}, wantErr: domain.ErrInvalidInput},
		{name: "rating too high", actor: owner, review: &domain.Review{VendorID: vendorID, Rating: 6}, wantErr: domain.ErrInvalidInput},
		{name: "unknown vendor", actor: owner, review: &domain.Review{VendorID: "ghost", Rating: 3}, wantErr: domain.ErrInvalidInput},
		{name: "self review", actor: vendorActor, review: &domain.Review{VendorID: vendorID, Rating: 5}, wantErr: domain.ErrForbidden},
		{name: "anonymous", actor: domain.Actor{}, review: &domain.Review{VendorID: vendorID, Rating: 5}, wantErr: domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReviewFixture()
			if tt.completed {
				f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{ID: "b1", VendorID: vendorID, CoupleID: tt.actor.UserID, Status: domain.BookingCompleted})
			}
			err := f.svc.CreateReview(context.Background(), tt.actor, tt.review)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.reviews.reviews)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.actor.UserID, tt.review.UserID)
			assert.Equal(t, tt.wantVerified, tt.review.IsVerified)
			vendor := f.vendors.byID[vendorID]
			if tt.wantVerified {
				assert.Equal(t, 4.0, vendor.Rating)
				assert.Equal(t, 1, vendor.ReviewCount)
			} else {
				assert.Zero(t, vendor.ReviewCount)
			}
		})
	}
}

func TestReviewService_OnePerVendor(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.CreateReview(ctx, owner, &domain.Review{VendorID: vendorID, Rating: 5}))
	err := f.svc.CreateReview(ctx, owner, &domain.Review{VendorID: vendorID, Rating: 1})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestReviewService_VerifyAndDeleteRecomputeRating(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	f.reviews.reviews = []*domain.Review{
		{ID: "r1", VendorID: vendorID, UserID: "u1", Rating: 5, IsVerified: true},
		{ID: "r2", VendorID: vendorID, UserID: "u2", Rating: 4},
		{ID: "r3", VendorID: vendorID, UserID: ownerID, Rating: 2},
	}

	_, err := f.svc.SetVerified(ctx, owner, "r2", true)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.SetVerified(ctx, admin, "r2", true)
	require.NoError(t, err)
	vendor := f.vendors.byID[vendorID]
	assert.Equal(t, 4.5, vendor.Rating)
	assert.Equal(t, 2, vendor.ReviewCount)

	_, err = f.svc.SetVerified(ctx, admin, "r3", true)
	require.NoError(t, err)
	assert.Equal(t, 3.7, vendor.Rating)
	assert.Equal(t, 3, vendor.ReviewCount)

	require.ErrorIs(t, f.svc.DeleteReview(ctx, stranger, "r3"), domain.ErrForbidden)
	require.NoError(t, f.svc.DeleteReview(ctx, owner, "r3"))
	assert.Equal(t, 4.5, vendor.Rating)

	_, err = f.svc.SetVerified(ctx, admin, "ghost", true)
	require.ErrorIs(t, err, domain.ErrNotFound)

	reviews, err := f.svc.ListReviews(ctx, vendorID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestFavoriteService(t *testing.T) {
	ctx := context.Background()
	vendors := newFakeVendorRepo(
		&domain.Vendor{ID: "v1", Name: "Bloom"},
		&domain.Vendor{ID: "v2", Name: "Snap"},
	)
	favorites := &fakeFavoriteRepo{}
	svc := NewFavoriteService(favorites, vendors, time.Second)

	empty, err := svc.ListFavorites(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, svc.Add(ctx, owner, "v1"))
	require.NoError(t, svc.Add(ctx, owner, "v1"))
	require.ErrorIs(t, svc.Add(ctx, owner, "ghost"), domain.ErrNotFound)
	require.ErrorIs(t, svc.Add(ctx, domain.Actor{}, "v1"), domain.ErrUnauthorized)
	assert.Len(t, favorites.pairs, 1)

	on, err := svc.Toggle(ctx, owner, "v2")
	require.NoError(t, err)
	assert.True(t, on)

	list, err := svc.ListFavorites(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bloom", list[0].Name)

	on, err = svc.Toggle(ctx, owner, "v1")
	require.NoError(t, err)
	assert.False(t, on)

	ok, err := svc.IsFavorite(ctx, owner, "v1")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := svc.ListFavoriteIDs(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, ids)

	require.NoError(t, svc.Remove(ctx, owner, "v2"))
	require.NoError(t, svc.Remove(ctx, owner, "v2"))
	ids, err = svc.ListFavoriteIDs(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookingService(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo(&domain.Event{ID: "ev-1", Title: "Wedding", CreatedBy: ownerID, CoupleNames: []string{"Ann", "Bo"}})
	vendors := newFakeVendorRepo(
		&domain.Vendor{ID: vendorID, Name: "Bloom", Email: "bloom@example.com", IsApproved: true},
		&domain.Vendor{ID: "v-pending", Name: "Snap"},
	)
	bookings := &fakeBookingRepo{}
	emails := &fakeEmailService{}
	svc := NewBookingService(bookings, events, vendors, newFakeUserRepo(), emails, "https://planner.test", testLogger(), time.Second)

	booking := &domain.Booking{EventID: "ev-1", VendorID: vendorID, Service: " Flowers ", Amount: 800}
	require.NoError(t, svc.CreateBooking(ctx, owner, booking))
	assert.Equal(t, domain.BookingInquiry, booking.Status)
	assert.Equal(t, ownerID, booking.CoupleID)
	assert.Equal(t, "Flowers", booking.Service)
	require.Len(t, emails.inquiries, 1)
	assert.Equal(t, "Ann & Bo", emails.inquiries[0].CoupleName)
	assert.Equal(t, "bloom@example.com", emails.inquiries[0].VendorEmail)

	rejects := []struct {
		name    string
		actor   domain.Actor
		booking *domain.Booking
		wantErr error
	}{
		{"not the event owner", stranger, &domain.Booking{EventID: "ev-1", VendorID: vendorID, Service: "x"}, domain.ErrForbidden},
		{"unapproved vendor", owner, &domain.Booking{EventID: "ev-1", VendorID: "v-pending", Service: "x"}, domain.ErrInvalidInput},
		{"unknown vendor", owner, &domain.Booking{EventID: "ev-1", VendorID: "ghost", Service: "x"}, domain.ErrInvalidInput},
		{"missing service", owner, &domain.Booking{EventID: "ev-1", VendorID: vendorID}, domain.ErrInvalidInput},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, svc.CreateBooking(ctx, tt.actor, tt.booking), tt.wantErr)
		})
	}
	assert.Len(t, bookings.bookings, 1)

	// The booked vendor may move the booking along; strangers may not.
	_, err := svc.UpdateBooking(ctx, stranger, booking.ID, domain.BookingPatch{Status: ptr(domain.BookingConfirmed)})
	require.ErrorIs(t, err, domain.ErrForbidden)
	updated, err := svc.UpdateBooking(ctx, vendorActor, booking.ID, domain.BookingPatch{Status: ptr(domain.BookingCompleted)})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, updated.Status)

	mine, err := svc.ListMine(ctx, vendorActor)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	mine, err = svc.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = svc.ListByVendor(ctx, owner, vendorID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.ListByEvent(ctx, stranger, "ev-1")
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.ErrorIs(t, svc.DeleteBooking(ctx, vendorActor, booking.ID), domain.ErrForbidden)
	require.NoError(t, svc.DeleteBooking(ctx, owner, booking.ID))
	require.ErrorIs(t, svc.DeleteBooking(ctx, owner, booking.ID), domain.ErrNotFound)
}

func TestBookingService_CoupleCannotCompleteOwnBooking(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo(&domain.Event{ID: "ev-1", Title: "Wedding", CreatedBy: ownerID})
	f := newReviewFixture()
	svc := NewBookingService(f.bookings, events, f.vendors, newFakeUserRepo(), nil, "", testLogger(), time.Second)

	booking := &domain.Booking{EventID: "ev-1", VendorID: vendorID, Service: "Flowers", Status: domain.BookingCompleted}
	require.NoError(t, svc.CreateBooking(ctx, owner, booking))
	assert.Equal(t, domain.BookingInquiry, booking.Status)

	_, err := svc.UpdateBooking(ctx, owner, booking.ID, domain.BookingPatch{Status: ptr(domain.BookingCompleted)})
	require.ErrorIs(t, err, domain.ErrForbidden)
	updated, err := svc.UpdateBooking(ctx, owner, booking.ID, domain.BookingPatch{Status: ptr(domain.BookingCancelled)})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)

	review := &domain.Review{VendorID: vendorID, Rating: 5}
	require.NoError(t, f.svc.CreateReview(ctx, owner, review))
	assert.False(t, review.IsVerified)
	assert.Zero(t, f.vendors.byID[vendorID].ReviewCount)

	// Once the vendor completes the booking, a fresh review counts.
	_, err = svc.UpdateBooking(ctx, vendorActor, booking.ID, domain.BookingPatch{Status: ptr(domain.BookingCompleted)})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteReview(ctx, owner, review.ID))
	again := &domain.Review{VendorID: vendorID, Rating: 5}
	require.NoError(t, f.svc.CreateReview(ctx, owner, again))
	assert.True(t, again.IsVerified)
	assert.Equal(t, 1, f.vendors.byID[vendorID].ReviewCount)
}
