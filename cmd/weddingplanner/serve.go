package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpdelivery "weddingplanner/internal/delivery/http"
	"weddingplanner/internal/delivery/http/controllers"
	"weddingplanner/internal/metrics"
	"weddingplanner/internal/session"
	"weddingplanner/internal/worker"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

var serveWithWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start the HTTP API server. With --with-worker the task reminder worker runs in the same process.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithWorker, "with-worker", false, "also run the task reminder worker")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	repos := a.repositories()
	svc := a.services(repos)

	defer metrics.TrackAuthEvents(a.broker)()
	defer a.broker.Subscribe(func(ev session.AuthEvent) {
		a.logger.Info("auth event", "type", ev.Type, "user_id", ev.UserID)
	})()

	handler := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:      controllers.NewAuthController(a.logger, svc.auth),
		Profile:   controllers.NewProfileController(a.logger, svc.profiles),
		Event:     controllers.NewEventController(a.logger, svc.events),
		Task:      controllers.NewTaskController(a.logger, svc.tasks),
		Guest:     controllers.NewGuestController(a.logger, svc.guests),
		Budget:    controllers.NewBudgetController(a.logger, svc.budget),
		Registry:  controllers.NewRegistryController(a.logger, svc.registry),
		Seating:   controllers.NewSeatingController(a.logger, svc.seating),
		Vendor:    controllers.NewVendorController(a.logger, svc.vendors),
		Review:    controllers.NewReviewController(a.logger, svc.reviews),
		Booking:   controllers.NewBookingController(a.logger, svc.bookings),
		Message:   controllers.NewMessageController(a.logger, svc.messages),
		Favorite:  controllers.NewFavoriteController(a.logger, svc.favorites),
		Dashboard: controllers.NewDashboardController(a.logger, svc.dashboard),
		Admin:     controllers.NewAdminController(a.logger, svc.admin),
	}, httpdelivery.RouterConfig{
		Authenticator:  svc.auth,
		Logger:         a.logger,
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("http server listening", "addr", server.Addr, "env", a.cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})
	if a.memory != nil {
		g.Go(func() error {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if n := a.memory.Sweep(); n > 0 {
						a.logger.Debug("swept expired cache entries", "count", n)
					}
				}
			}
		})
	}
	if serveWithWorker {
		reminder := worker.NewReminder(repos.tasks, a.emails, a.logger, a.reminderConfig())
		g.Go(func() error { return reminder.Run(ctx) })
	}
	return g.Wait()
}
