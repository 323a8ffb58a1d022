package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"weddingplanner/internal/domain"
)

const (
	ownerID    = "owner-1"
	strangerID = "stranger-1"
	adminID    = "admin-1"
)

var (
	owner    = domain.Actor{UserID: ownerID, Role: domain.RoleCouple}
	stranger = domain.Actor{UserID: strangerID, Role: domain.RoleGuest}
	admin    = domain.Actor{UserID: adminID, Role: domain.RoleAdmin}
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID     map[string]*domain.Event
	nextID   int
	err      error // if set, Create returns this error
	progress map[string]int
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{
		byID:     make(map[string]*domain.Event),
		nextID:   1,
		progress: make(map[string]int),
	}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.CreatedBy == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListPublic(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.IsPublic {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.IsPublic != nil {
		e.IsPublic = *patch.IsPublic
	}
	if patch.Budget != nil {
		e.Budget = *patch.Budget
	}
	return e, nil
}

func (f *fakeEventRepo) SetProgress(ctx context.Context, id string, progress int) error {
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Progress = progress
	f.progress[id] = progress
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeTaskRepo keeps tasks in insertion order.
type fakeTaskRepo struct {
	tasks  []*domain.Task
	nextID int
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTaskRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0)
	for _, t := range f.tasks {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error) {
	return nil, nil
}

func (f *fakeTaskRepo) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	return nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	return t, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeBudgetRepo records the last patch it was given.
type fakeBudgetRepo struct {
	byID      map[string]*domain.BudgetItem
	lastPatch *domain.BudgetItemPatch
}

func newFakeBudgetRepo(items ...*domain.BudgetItem) *fakeBudgetRepo {
	f := &fakeBudgetRepo{byID: make(map[string]*domain.BudgetItem)}
	for _, it := range items {
		f.byID[it.ID] = it
	}
	return f
}

func (f *fakeBudgetRepo) Create(ctx context.Context, it *domain.BudgetItem) error {
	it.ID = fmt.Sprintf("budget-%d", len(f.byID)+1)
	f.byID[it.ID] = it
	return nil
}

func (f *fakeBudgetRepo) GetByID(ctx context.Context, id string) (*domain.BudgetItem, error) {
	if it, ok := f.byID[id]; ok {
		return it, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBudgetRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.BudgetItem, error) {
	out := make([]*domain.BudgetItem, 0)
	for _, it := range f.byID {
		if it.EventID == eventID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) Update(ctx context.Context, id string, patch domain.BudgetItemPatch) (*domain.BudgetItem, error) {
	f.lastPatch = &patch
	it, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Category != nil {
		it.Category = *patch.Category
	}
	if patch.Budgeted != nil {
		it.Budgeted = *patch.Budgeted
	}
	if patch.Spent != nil {
		it.Spent = *patch.Spent
	}
	if patch.Remaining != nil {
		it.Remaining = *patch.Remaining
	}
	if patch.Vendors != nil {
		it.Vendors = *patch.Vendors
	}
	return it, nil
}

func (f *fakeBudgetRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeGiftRepo is an in-memory GiftRegistryRepository.
type fakeGiftRepo struct {
	byID map[string]*domain.GiftRegistryItem
}

func newFakeGiftRepo(items ...*domain.GiftRegistryItem) *fakeGiftRepo {
	f := &fakeGiftRepo{byID: make(map[string]*domain.GiftRegistryItem)}
	for _, it := range items {
		f.byID[it.ID] = it
	}
	return f
}

func (f *fakeGiftRepo) Create(ctx context.Context, it *domain.GiftRegistryItem) error {
	it.ID = fmt.Sprintf("gift-%d", len(f.byID)+1)
	f.byID[it.ID] = it
	return nil
}

func (f *fakeGiftRepo) GetByID(ctx context.Context, id string) (*domain.GiftRegistryItem, error) {
	if it, ok := f.byID[id]; ok {
		return it, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGiftRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.GiftRegistryItem, error) {
	out := make([]*domain.GiftRegistryItem, 0)
	for _, it := range f.byID {
		if it.EventID == eventID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeGiftRepo) Update(ctx context.Context, id string, patch domain.GiftRegistryPatch) (*domain.GiftRegistryItem, error) {
	it, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}
	return it, nil
}

func (f *fakeGiftRepo) IncrementPurchased(ctx context.Context, id string, n int) (*domain.GiftRegistryItem, error) {
	it, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	it.Purchased += n
	return it, nil
}

func (f *fakeGiftRepo) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

// fakeIdentityRepo stores identities by id and email.
type fakeIdentityRepo struct {
	byID map[string]*domain.Identity
	err  error // if set, GetByID returns this error
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func (f *fakeIdentityRepo) Create(ctx context.Context, identity *domain.Identity) error {
	for _, existing := range f.byID {
		if existing.Email == identity.Email {
			return domain.ErrConflict
		}
	}
	identity.ID = fmt.Sprintf("user-%d", len(f.byID)+1)
	f.byID[identity.ID] = identity
	return nil
}

func (f *fakeIdentityRepo) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	for _, identity := range f.byID {
		if identity.Email == email {
			return identity, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeIdentityRepo) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if identity, ok := f.byID[id]; ok {
		return identity, nil
	}
	return nil, domain.ErrNotFound
}

// fakeUserRepo is an in-memory UserRepository. createErr and getErr inject failures.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	creates   int
	createErr error
	getErr    error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byID[u.ID]; ok {
		return domain.ErrConflict
	}
	u.Persisted = true
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	return u, nil
}

func (f *fakeUserRepo) SetApproval(ctx context.Context, id string, approved bool) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.IsApproved = approved
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter domain.UserFilter, page domain.PaginationParams) ([]*domain.User, int, error) {
	out := make([]*domain.User, 0)
	for _, u := range f.byID {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	counts := make(map[domain.Role]int)
	for _, u := range f.byID {
		counts[u.Role]++
	}
	return counts, nil
}

// plainHasher compares passwords in the clear.
type plainHasher struct{}

func (plainHasher) GenerateSalt() (string, error) { return "salt", nil }

func (plainHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (plainHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens issues tokens of the form "tok-<n>" and verifies only those it issued.
type fakeTokens struct {
	issued map[string]domain.TokenClaims
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{issued: make(map[string]domain.TokenClaims)}
}

func (f *fakeTokens) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, domain.TokenClaims, error) {
	token := fmt.Sprintf("tok-%d", len(f.issued)+1)
	claims := domain.TokenClaims{
		TokenID:   "jti-" + token,
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: time.Now().Add(expiry),
	}
	f.issued[token] = claims
	return token, claims, nil
}

func (f *fakeTokens) Verify(token string) (domain.TokenClaims, error) {
	claims, ok := f.issued[token]
	if !ok {
		return domain.TokenClaims{}, errors.New("bad token")
	}
	return claims, nil
}

type fakeDenylist struct {
	revoked map[string]time.Duration
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: make(map[string]time.Duration)}
}

func (f *fakeDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}

// fakeEmailService records welcome and booking emails.
type fakeEmailService struct {
	domain.EmailService
	welcomes  []*domain.WelcomeEmailData
	inquiries []*domain.BookingInquiryEmailData
	err       error
}

func (f *fakeEmailService) SendBookingInquiry(ctx context.Context, data *domain.BookingInquiryEmailData) error {
	f.inquiries = append(f.inquiries, data)
	return f.err
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	f.welcomes = append(f.welcomes, data)
	return f.err
}

func ptr[T any](v T) *T { return &v }

// fakeVendorRepo counts List calls so tests can observe caching.
type fakeVendorRepo struct {
	byID      map[string]*domain.Vendor
	listCalls int
}

func newFakeVendorRepo(vendors ...*domain.Vendor) *fakeVendorRepo {
	f := &fakeVendorRepo{byID: make(map[string]*domain.Vendor)}
	for _, v := range vendors {
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	if _, ok := f.byID[v.ID]; ok {
		return domain.ErrConflict
	}
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVendorRepo) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVendorRepo) List(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	f.listCalls++
	out := make([]*domain.Vendor, 0)
	for _, v := range f.byID {
		if filter.ApprovedOnly && !v.IsApproved {
			continue
		}
		if filter.FeaturedOnly && !v.IsFeatured {
			continue
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVendorRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Vendor, error) {
	out := make([]*domain.Vendor, 0, len(ids))
	for _, id := range ids {
		if v, ok := f.byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVendorRepo) Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.StartingPrice != nil {
		v.StartingPrice = *patch.StartingPrice
	}
	return v, nil
}

func (f *fakeVendorRepo) SetFlags(ctx context.Context, id string, approved, featured *bool) (*domain.Vendor, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if approved != nil {
		v.IsApproved = *approved
	}
	if featured != nil {
		v.IsFeatured = *featured
	}
	return v, nil
}

func (f *fakeVendorRepo) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	v, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Rating, v.ReviewCount = rating, reviewCount
	return nil
}

func (f *fakeVendorRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeVendorRepo) CountPendingApproval(ctx context.Context) (int, error) {
	n := 0
	for _, v := range f.byID {
		if !v.IsApproved {
			n++
		}
	}
	return n, nil
}

// fakeReviewRepo enforces one review per vendor and user.
type fakeReviewRepo struct {
	reviews []*domain.Review
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	for _, existing := range f.reviews {
		if existing.VendorID == r.VendorID && existing.UserID == r.UserID {
			return domain.ErrConflict
		}
	}
	r.ID = fmt.Sprintf("review-%d", len(f.reviews)+1)
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReviewRepo) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0)
	for _, r := range f.reviews {
		if r.VendorID == vendorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListVerifiedByVendor(ctx context.Context, vendorID string) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0)
	for _, r := range f.reviews {
		if r.VendorID == vendorID && r.IsVerified {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) SetVerified(ctx context.Context, id string, verified bool) (*domain.Review, error) {
	r, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.IsVerified = verified
	return r, nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	b.ID = fmt.Sprintf("booking-%d", len(f.bookings)+1)
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) filter(keep func(*domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeBookingRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	return f.filter(func(b *domain.Booking) bool { return b.EventID == eventID }), nil
}

func (f *fakeBookingRepo) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Booking, error) {
	return f.filter(func(b *domain.Booking) bool { return b.VendorID == vendorID }), nil
}

func (f *fakeBookingRepo) ListByCouple(ctx context.Context, coupleID string) ([]*domain.Booking, error) {
	return f.filter(func(b *domain.Booking) bool { return b.CoupleID == coupleID }), nil
}

func (f *fakeBookingRepo) HasCompleted(ctx context.Context, vendorID, coupleID string) (bool, error) {
	done := f.filter(func(b *domain.Booking) bool {
		return b.VendorID == vendorID && b.CoupleID == coupleID && b.Status == domain.BookingCompleted
	})
	return len(done) > 0, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	b, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	return b, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBookingRepo) Count(ctx context.Context) (int, error) {
	return len(f.bookings), nil
}

// fakeFavoriteRepo stores favorites as user/vendor pairs in insertion order.
type fakeFavoriteRepo struct {
	pairs [][2]string
}

func (f *fakeFavoriteRepo) index(userID, vendorID string) int {
	for i, p := range f.pairs {
		if p[0] == userID && p[1] == vendorID {
			return i
		}
	}
	return -1
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, vendorID string) error {
	if f.index(userID, vendorID) >= 0 {
		return domain.ErrConflict
	}
	f.pairs = append(f.pairs, [2]string{userID, vendorID})
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, vendorID string) (bool, error) {
	i := f.index(userID, vendorID)
	if i < 0 {
		return false, nil
	}
	f.pairs = append(f.pairs[:i], f.pairs[i+1:]...)
	return true, nil
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, userID, vendorID string) (bool, error) {
	return f.index(userID, vendorID) >= 0, nil
}

func (f *fakeFavoriteRepo) ListVendorIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	for _, p := range f.pairs {
		if p[0] == userID {
			ids = append(ids, p[1])
		}
	}
	return ids, nil
}

// fakeMessageRepo is an in-memory MessageRepository.
type fakeMessageRepo struct {
	msgs []*domain.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *domain.Message) error {
	m.ID = fmt.Sprintf("msg-%d", len(f.msgs)+1)
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	for _, m := range f.msgs {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMessageRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	out := make([]*domain.Message, 0)
	for _, m := range f.msgs {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListBetween(ctx context.Context, userID, otherID string) ([]*domain.Message, error) {
	out := make([]*domain.Message, 0)
	for _, m := range f.msgs {
		if (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, id string) (*domain.Message, error) {
	m, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsRead = true
	return m, nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, m := range f.msgs {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageRepo) Delete(ctx context.Context, id string) error {
	for i, m := range f.msgs {
		if m.ID == id {
			f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeGuestRepo keeps guests in insertion order. failOn makes Update fail for one guest.
type fakeGuestRepo struct {
	guests []*domain.Guest
	failOn string
}

func (f *fakeGuestRepo) Create(ctx context.Context, g *domain.Guest) error {
	g.ID = fmt.Sprintf("guest-%d", len(f.guests)+1)
	f.guests = append(f.guests, g)
	return nil
}

func (f *fakeGuestRepo) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	for _, g := range f.guests {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Guest, error) {
	out := make([]*domain.Guest, 0)
	for _, g := range f.guests {
		if g.EventID == eventID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGuestRepo) Update(ctx context.Context, id string, patch domain.GuestPatch) (*domain.Guest, error) {
	if id == f.failOn {
		return nil, errors.New("write failed")
	}
	g, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.RSVPStatus != nil {
		g.RSVPStatus = *patch.RSVPStatus
	}
	if patch.PlusOne != nil {
		g.PlusOne = *patch.PlusOne
	}
	if patch.PlusOneName != nil {
		g.PlusOneName = *patch.PlusOneName
	}
	if patch.ClearTable {
		g.TableNumber = nil
	} else if patch.TableNumber != nil {
		n := *patch.TableNumber
		g.TableNumber = &n
	}
	return g, nil
}

func (f *fakeGuestRepo) ClearTablesByEvent(ctx context.Context, eventID string) (int, error) {
	n := 0
	for _, g := range f.guests {
		if g.EventID == eventID && g.TableNumber != nil {
			g.TableNumber = nil
			n++
		}
	}
	return n, nil
}

func (f *fakeGuestRepo) Delete(ctx context.Context, id string) error {
	for i, g := range f.guests {
		if g.ID == id {
			f.guests = append(f.guests[:i], f.guests[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeSeatingRepo is an in-memory SeatingRepository.
type fakeSeatingRepo struct {
	byID map[string]*domain.SeatingPlan
}

func newFakeSeatingRepo(plans ...*domain.SeatingPlan) *fakeSeatingRepo {
	f := &fakeSeatingRepo{byID: make(map[string]*domain.SeatingPlan)}
	for _, p := range plans {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeSeatingRepo) Create(ctx context.Context, p *domain.SeatingPlan) error {
	p.ID = fmt.Sprintf("plan-%d", len(f.byID)+1)
	f.byID[p.ID] = p
	return nil
}

func (f *fakeSeatingRepo) GetByID(ctx context.Context, id string) (*domain.SeatingPlan, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSeatingRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.SeatingPlan, error) {
	out := make([]*domain.SeatingPlan, 0)
	for _, p := range f.byID {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSeatingRepo) Update(ctx context.Context, id string, patch domain.SeatingPlanPatch) (*domain.SeatingPlan, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Tables != nil {
		p.Tables = *patch.Tables
	}
	return p, nil
}

func (f *fakeSeatingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}
