package http

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/controllers"
	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups every HTTP controller the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Profile   *controllers.ProfileController
	Event     *controllers.EventController
	Task      *controllers.TaskController
	Guest     *controllers.GuestController
	Budget    *controllers.BudgetController
	Registry  *controllers.RegistryController
	Seating   *controllers.SeatingController
	Vendor    *controllers.VendorController
	Review    *controllers.ReviewController
	Booking   *controllers.BookingController
	Message   *controllers.MessageController
	Favorite  *controllers.FavoriteController
	Dashboard *controllers.DashboardController
	Admin     *controllers.AdminController
}

// RouterConfig carries what the router needs besides the controllers.
type RouterConfig struct {
	Authenticator  middleware.Authenticator
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Authenticator, cfg.Logger)
	optional := middleware.OptionalAuth(cfg.Authenticator)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.SignIn)
	mux.HandleFunc("POST /auth/logout", auth(c.Auth.SignOut))
	mux.HandleFunc("GET /auth/session", c.Auth.GetSession)

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.GetProfile))
	mux.HandleFunc("POST /profile", auth(c.Profile.CreateProfile))
	mux.HandleFunc("PATCH /profile", auth(c.Profile.UpdateProfile))

	// Events
	mux.HandleFunc("GET /events", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /events/public", optional(c.Event.ListPublicEvents))
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Tasks
	mux.HandleFunc("GET /events/{eventID}/tasks", auth(c.Task.ListTasks))
	mux.HandleFunc("POST /events/{eventID}/tasks", auth(c.Task.CreateTask))
	mux.HandleFunc("GET /events/{eventID}/tasks/stats", auth(c.Task.TaskStats))
	mux.HandleFunc("PATCH /tasks/{taskID}", auth(c.Task.UpdateTask))
	mux.HandleFunc("POST /tasks/{taskID}/complete", auth(c.Task.CompleteTask))
	mux.HandleFunc("DELETE /tasks/{taskID}", auth(c.Task.DeleteTask))

	// Guests
	mux.HandleFunc("GET /events/{eventID}/guests", auth(c.Guest.ListGuests))
	mux.HandleFunc("POST /events/{eventID}/guests", auth(c.Guest.CreateGuest))
	mux.HandleFunc("GET /events/{eventID}/guests/stats", auth(c.Guest.RSVPStats))
	mux.HandleFunc("PATCH /guests/{guestID}", auth(c.Guest.UpdateGuest))
	mux.HandleFunc("POST /guests/{guestID}/rsvp", auth(c.Guest.RespondRSVP))
	mux.HandleFunc("DELETE /guests/{guestID}", auth(c.Guest.DeleteGuest))
	mux.HandleFunc("PUT /guests/{guestID}/table", auth(c.Seating.AssignGuest))

	// Budget
	mux.HandleFunc("GET /events/{eventID}/budget", auth(c.Budget.ListItems))
	mux.HandleFunc("POST /events/{eventID}/budget", auth(c.Budget.CreateItem))
	mux.HandleFunc("GET /events/{eventID}/budget/summary", auth(c.Budget.Summary))
	mux.HandleFunc("GET /events/{eventID}/budget/alerts", auth(c.Budget.Alerts))
	mux.HandleFunc("PATCH /budget/{itemID}", auth(c.Budget.UpdateItem))
	mux.HandleFunc("DELETE /budget/{itemID}", auth(c.Budget.DeleteItem))

	// Gift registry
	mux.HandleFunc("GET /events/{eventID}/registry", auth(c.Registry.ListItems))
	mux.HandleFunc("POST /events/{eventID}/registry", auth(c.Registry.CreateItem))
	mux.HandleFunc("PATCH /registry/{itemID}", auth(c.Registry.UpdateItem))
	mux.HandleFunc("POST /registry/{itemID}/purchase", auth(c.Registry.Purchase))
	mux.HandleFunc("DELETE /registry/{itemID}", auth(c.Registry.DeleteItem))

	// Seating
	mux.HandleFunc("GET /events/{eventID}/seating-plans", auth(c.Seating.ListPlans))
	mux.HandleFunc("POST /events/{eventID}/seating-plans", auth(c.Seating.CreatePlan))
	mux.HandleFunc("DELETE /events/{eventID}/seating-assignments", auth(c.Seating.ClearAssignments))
	mux.HandleFunc("GET /seating-plans/{planID}", auth(c.Seating.GetPlan))
	mux.HandleFunc("PATCH /seating-plans/{planID}", auth(c.Seating.UpdatePlan))
	mux.HandleFunc("DELETE /seating-plans/{planID}", auth(c.Seating.DeletePlan))
	mux.HandleFunc("POST /seating-plans/{planID}/auto-assign", auth(c.Seating.AutoAssign))

	// Vendors
	mux.HandleFunc("GET /vendors", optional(c.Vendor.ListVendors))
	mux.HandleFunc("POST /vendors", auth(c.Vendor.CreateProfile))
	mux.HandleFunc("GET /vendors/{vendorID}", optional(c.Vendor.GetVendor))
	mux.HandleFunc("PATCH /vendors/{vendorID}", auth(c.Vendor.UpdateProfile))
	mux.HandleFunc("DELETE /vendors/{vendorID}", auth(c.Vendor.DeleteVendor))
	mux.HandleFunc("PUT /vendors/{vendorID}/approval", auth(c.Vendor.SetApproval))
	mux.HandleFunc("PUT /vendors/{vendorID}/featured", auth(c.Vendor.SetFeatured))

	// Reviews
	mux.HandleFunc("GET /vendors/{vendorID}/reviews", optional(c.Review.ListReviews))
	mux.HandleFunc("POST /vendors/{vendorID}/reviews", auth(c.Review.CreateReview))
	mux.HandleFunc("PUT /reviews/{reviewID}/verified", auth(c.Review.SetVerified))
	mux.HandleFunc("DELETE /reviews/{reviewID}", auth(c.Review.DeleteReview))

	// Bookings
	mux.HandleFunc("GET /bookings", auth(c.Booking.ListMine))
	mux.HandleFunc("GET /events/{eventID}/bookings", auth(c.Booking.ListByEvent))
	mux.HandleFunc("POST /events/{eventID}/bookings", auth(c.Booking.CreateBooking))
	mux.HandleFunc("GET /vendors/{vendorID}/bookings", auth(c.Booking.ListByVendor))
	mux.HandleFunc("PATCH /bookings/{bookingID}", auth(c.Booking.UpdateBooking))
	mux.HandleFunc("DELETE /bookings/{bookingID}", auth(c.Booking.DeleteBooking))

	// Messages
	mux.HandleFunc("GET /messages", auth(c.Message.ListMessages))
	mux.HandleFunc("POST /messages", auth(c.Message.Send))
	mux.HandleFunc("GET /messages/conversations", auth(c.Message.Conversations))
	mux.HandleFunc("GET /messages/unread-count", auth(c.Message.UnreadCount))
	mux.HandleFunc("GET /messages/with/{userID}", auth(c.Message.Conversation))
	mux.HandleFunc("POST /messages/{messageID}/read", auth(c.Message.MarkRead))
	mux.HandleFunc("DELETE /messages/{messageID}", auth(c.Message.DeleteMessage))

	// Favorites
	mux.HandleFunc("GET /favorites", auth(c.Favorite.ListFavorites))
	mux.HandleFunc("GET /favorites/ids", auth(c.Favorite.ListFavoriteIDs))
	mux.HandleFunc("GET /favorites/{vendorID}", auth(c.Favorite.IsFavorite))
	mux.HandleFunc("PUT /favorites/{vendorID}", auth(c.Favorite.Add))
	mux.HandleFunc("DELETE /favorites/{vendorID}", auth(c.Favorite.Remove))
	mux.HandleFunc("POST /favorites/{vendorID}/toggle", auth(c.Favorite.Toggle))

	// Dashboards
	mux.HandleFunc("GET /dashboard/couple", auth(c.Dashboard.Couple))
	mux.HandleFunc("GET /dashboard/vendor", auth(c.Dashboard.Vendor))
	mux.HandleFunc("GET /dashboard/guest", auth(c.Dashboard.Guest))
	mux.HandleFunc("GET /dashboard/admin", auth(c.Dashboard.Admin))
	mux.HandleFunc("GET /dashboard/general", c.Dashboard.General)

	// Admin
	mux.HandleFunc("GET /admin/users", auth(c.Admin.ListUsers))
	mux.HandleFunc("PUT /admin/users/{userID}/approval", auth(c.Admin.SetUserApproval))
	mux.HandleFunc("GET /admin/stats", auth(c.Admin.PlatformStats))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, controllers.StatusResponse{Status: "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// metrics.Middleware reads r.Pattern, so it must sit directly on the mux.
	var h http.Handler = metrics.Middleware()(mux)
	h = middleware.CORS(cfg.AllowedOrigins, h)
	return middleware.LoggingMiddleware(cfg.Logger, h)
}
