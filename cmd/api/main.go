package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Singh-Prajwal/rental/internal/api/http"
	"github.com/Singh-Prajwal/rental/internal/api/http/handlers"
	"github.com/Singh-Prajwal/rental/internal/auth"
	"github.com/Singh-Prajwal/rental/internal/config"
	"github.com/Singh-Prajwal/rental/internal/events"
	"github.com/Singh-Prajwal/rental/internal/observability"
	"github.com/Singh-Prajwal/rental/internal/persistence"
	"github.com/Singh-Prajwal/rental/internal/repository"
	"github.com/Singh-Prajwal/rental/internal/service"
	"github.com/Singh-Prajwal/rental/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	bookingRepo := repository.NewBookingRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	visitRepo := repository.NewVisitRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	transitionService := service.NewTransitionService(service.TransitionDependencies{
		BookingRepo: bookingRepo,
		TicketRepo:  ticketRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
	})
	schedulingService := service.NewSchedulingService(service.SchedulingDependencies{
		TicketRepo:  ticketRepo,
		VisitRepo:   visitRepo,
		Transitions: transitionService,
		Dispatcher:  dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		BookingRepo: bookingRepo,
		VisitRepo:   visitRepo,
		Dispatcher:  dispatcher,
	})
	bookingService := service.NewBookingService(bookingRepo)

	gateway := service.NewLogGateway(logger, cfg.Notification)
	notificationService := service.NewNotificationService(dispatcher, gateway, redis, logger, cfg.Notification)
	worker.StartNotificationWorker(ctx, notificationService, cfg.Notification.RetryInterval(), logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	supportHandler := handlers.NewSupportHandler(ticketService, transitionService, schedulingService)
	bookingsHandler := handlers.NewBookingsHandler(bookingService, transitionService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Support:        supportHandler,
		Bookings:       bookingsHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
