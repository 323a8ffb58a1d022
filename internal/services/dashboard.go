package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"weddingplanner/internal/domain"
)

const recentUsersLimit = 10

// DashboardDeps are the services a dashboard composes.
type DashboardDeps struct {
	Events    domain.EventService
	Tasks     domain.TaskService
	Guests    domain.GuestService
	Budget    domain.BudgetService
	Registry  domain.GiftRegistryService
	Bookings  domain.BookingService
	Vendors   domain.VendorService
	Reviews   domain.ReviewService
	Messages  domain.MessageService
	Favorites domain.FavoriteService
	Admin     domain.AdminService
}

type dashboardService struct {
	deps DashboardDeps
	now  func() time.Time
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(deps DashboardDeps) domain.DashboardService {
	return &dashboardService{deps: deps, now: time.Now}
}

// Couple lists the actor's events and loads the selected one (the first when eventID is empty) in parallel.
func (s *dashboardService) Couple(ctx context.Context, actor domain.Actor, eventID string) (*domain.CoupleDashboard, error) {
	if actor.Role != domain.RoleCouple && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	events, err := s.deps.Events.ListMyEvents(ctx, actor)
	if err != nil {
		return nil, err
	}
	dash := &domain.CoupleDashboard{Events: events}
	if eventID == "" {
		if len(events) == 0 {
			return dash, nil
		}
		eventID = events[0].ID
	}

	ov := &domain.EventOverview{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ov.Event, err = s.deps.Events.GetEvent(gctx, actor, eventID)
		return err
	})
	g.Go(func() (err error) {
		ov.Tasks, err = s.deps.Tasks.ListTasks(gctx, actor, eventID)
		return err
	})
	g.Go(func() (err error) {
		ov.Guests, err = s.deps.Guests.ListGuests(gctx, actor, eventID)
		return err
	})
	g.Go(func() (err error) {
		ov.BudgetItems, err = s.deps.Budget.ListItems(gctx, actor, eventID)
		return err
	})
	g.Go(func() (err error) {
		ov.Registry, err = s.deps.Registry.ListItems(gctx, actor, eventID)
		return err
	})
	g.Go(func() (err error) {
		ov.Bookings, err = s.deps.Bookings.ListByEvent(gctx, actor, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ov.TaskStats = SummarizeTasks(ov.Tasks, s.now())
	ov.RSVPStats = SummarizeRSVPs(ov.Guests)
	ov.BudgetSummary = SummarizeBudget(ov.BudgetItems)
	ov.BudgetAlerts = BudgetAlerts(ov.BudgetItems)
	dash.Selected = ov
	return dash, nil
}

// Vendor loads the vendor's profile, bookings, reviews and unread count. A vendor without a profile gets a nil Vendor.
func (s *dashboardService) Vendor(ctx context.Context, actor domain.Actor) (*domain.VendorDashboard, error) {
	if actor.Role != domain.RoleVendor && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	dash := &domain.VendorDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.deps.Vendors.GetVendor(gctx, actor.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		dash.Vendor = v
		return err
	})
	g.Go(func() (err error) {
		dash.Bookings, err = s.deps.Bookings.ListByVendor(gctx, actor, actor.UserID)
		return err
	})
	g.Go(func() (err error) {
		dash.Reviews, err = s.deps.Reviews.ListReviews(gctx, actor.UserID)
		return err
	})
	g.Go(func() (err error) {
		dash.UnreadMessages, err = s.deps.Messages.UnreadCount(gctx, actor)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *dashboardService) Guest(ctx context.Context, actor domain.Actor) (*domain.GuestDashboard, error) {
	dash := &domain.GuestDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.PublicEvents, err = s.deps.Events.ListPublicEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.FavoriteVendors, err = s.deps.Favorites.ListFavorites(gctx, actor)
		return err
	})
	g.Go(func() (err error) {
		dash.UnreadMessages, err = s.deps.Messages.UnreadCount(gctx, actor)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *dashboardService) Admin(ctx context.Context, actor domain.Actor) (*domain.AdminDashboard, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	dash := &domain.AdminDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.Stats, err = s.deps.Admin.PlatformStats(gctx, actor)
		return err
	})
	g.Go(func() error {
		vendors, err := s.deps.Vendors.ListVendors(gctx, domain.VendorFilter{})
		if err != nil {
			return err
		}
		dash.UnapprovedVendors = make([]*domain.Vendor, 0)
		for _, v := range vendors {
			if !v.IsApproved {
				dash.UnapprovedVendors = append(dash.UnapprovedVendors, v)
			}
		}
		return nil
	})
	g.Go(func() (err error) {
		dash.RecentUsers, _, err = s.deps.Admin.ListUsers(gctx, actor, domain.UserFilter{}, domain.PaginationParams{Page: 1, PageSize: recentUsersLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *dashboardService) General(ctx context.Context) (*domain.GeneralDashboard, error) {
	dash := &domain.GeneralDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.PublicEvents, err = s.deps.Events.ListPublicEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.FeaturedVendors, err = s.deps.Vendors.ListVendors(gctx, domain.VendorFilter{ApprovedOnly: true, FeaturedOnly: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dash, nil
}
