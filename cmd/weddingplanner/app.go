package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"weddingplanner/config"
	authadapter "weddingplanner/internal/adapters/auth"
	"weddingplanner/internal/adapters/cache"
	"weddingplanner/internal/adapters/email"
	"weddingplanner/internal/domain"
	"weddingplanner/internal/repository/postgres"
	"weddingplanner/internal/services"
	"weddingplanner/internal/session"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client
	memory *cache.Memory // set when Redis is not in use

	cache    domain.Cache
	denylist domain.TokenDenylist
	emails   domain.EmailService
	broker   *session.Broker
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	db, err := openDB(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, db: db, broker: session.NewBroker()}

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{URL: cfg.RedisURL})
		if err != nil {
			logger.Warn("redis unavailable, falling back to in-memory cache", "err", err)
		} else {
			a.redis = client
			a.cache = cache.NewRedisCache(client)
			a.denylist = cache.NewRedisDenylist(client)
		}
	}
	if a.redis == nil {
		a.memory = cache.NewMemory()
		a.cache = a.memory
		a.denylist = a.memory
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	a.emails = services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	return a, nil
}

func openDB(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Close releases the database and Redis connections.
func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", "err", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "err", err)
	}
}

// repositories groups the Postgres-backed stores.
type repositories struct {
	identities domain.IdentityRepository
	users      domain.UserRepository
	events     domain.EventRepository
	tasks      domain.TaskRepository
	guests     domain.GuestRepository
	budget     domain.BudgetRepository
	gifts      domain.GiftRegistryRepository
	seating    domain.SeatingRepository
	vendors    domain.VendorRepository
	bookings   domain.BookingRepository
	reviews    domain.ReviewRepository
	messages   domain.MessageRepository
	favorites  domain.FavoriteRepository
}

func (a *app) repositories() repositories {
	return repositories{
		identities: postgres.NewIdentityRepository(a.db),
		users:      postgres.NewUserRepository(a.db),
		events:     postgres.NewEventRepository(a.db),
		tasks:      postgres.NewTaskRepository(a.db),
		guests:     postgres.NewGuestRepository(a.db),
		budget:     postgres.NewBudgetRepository(a.db),
		gifts:      postgres.NewGiftRegistryRepository(a.db),
		seating:    postgres.NewSeatingRepository(a.db),
		vendors:    postgres.NewVendorRepository(a.db),
		bookings:   postgres.NewBookingRepository(a.db),
		reviews:    postgres.NewReviewRepository(a.db),
		messages:   postgres.NewMessageRepository(a.db),
		favorites:  postgres.NewFavoriteRepository(a.db),
	}
}

// serviceSet is every domain service, wired once per process.
type serviceSet struct {
	auth      domain.AuthService
	profiles  domain.ProfileService
	events    domain.EventService
	tasks     domain.TaskService
	guests    domain.GuestService
	budget    domain.BudgetService
	registry  domain.GiftRegistryService
	seating   domain.SeatingService
	vendors   domain.VendorService
	bookings  domain.BookingService
	reviews   domain.ReviewService
	messages  domain.MessageService
	favorites domain.FavoriteService
	admin     domain.AdminService
	dashboard domain.DashboardService
}

func (a *app) services(repos repositories) *serviceSet {
	timeout := a.cfg.ContextTimeout
	logger := a.logger

	s := &serviceSet{}
	s.profiles = services.NewProfileService(repos.identities, repos.users, logger, timeout)
	s.auth = services.NewAuthService(
		repos.identities,
		s.profiles,
		authadapter.NewBcryptHasher(a.cfg.BcryptCost),
		authadapter.NewJWTIssuer(a.cfg.JWTSecret),
		authadapter.NewJWTVerifier(a.cfg.JWTSecret),
		a.denylist,
		a.emails,
		a.broker,
		logger,
		services.AuthConfig{TokenExpiry: a.cfg.JWTExpiry, AppURL: a.cfg.AppBaseURL, ContextTimeout: timeout},
	)
	s.events = services.NewEventService(repos.events, repos.tasks, timeout)
	s.tasks = services.NewTaskService(repos.tasks, repos.events, s.events, logger, timeout)
	s.guests = services.NewGuestService(repos.guests, repos.events, timeout)
	s.budget = services.NewBudgetService(repos.budget, repos.events, timeout)
	s.registry = services.NewGiftRegistryService(repos.gifts, repos.events, timeout)
	s.seating = services.NewSeatingService(repos.seating, repos.guests, repos.events, logger, timeout)
	s.vendors = services.NewVendorService(repos.vendors, a.cache, a.cfg.VendorCacheTTL, logger, timeout)
	s.bookings = services.NewBookingService(repos.bookings, repos.events, repos.vendors, repos.users, a.emails, a.cfg.AppBaseURL, logger, timeout)
	s.reviews = services.NewReviewService(repos.reviews, repos.vendors, repos.bookings, s.vendors, logger, timeout)
	s.messages = services.NewMessageService(repos.messages, repos.users, timeout)
	s.favorites = services.NewFavoriteService(repos.favorites, repos.vendors, timeout)
	s.admin = services.NewAdminService(repos.users, repos.events, repos.bookings, repos.vendors, timeout)
	s.dashboard = services.NewDashboardService(services.DashboardDeps{
		Events:    s.events,
		Tasks:     s.tasks,
		Guests:    s.guests,
		Budget:    s.budget,
		Registry:  s.registry,
		Bookings:  s.bookings,
		Vendors:   s.vendors,
		Reviews:   s.reviews,
		Messages:  s.messages,
		Favorites: s.favorites,
		Admin:     s.admin,
	})
	return s
}
