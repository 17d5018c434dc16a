package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crm-service/internal/api/http"
	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/auth"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/observability"
	"github.com/spec-kit/crm-service/internal/persistence"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
	"github.com/spec-kit/crm-service/internal/worker"
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics("crm")
	pool := pg.PoolHandle()
	metrics.RegisterPool(pool)

	tx := repository.NewTransactor(pool)
	userRepo := repository.NewUserRepository(pool)
	tenantRepo := repository.NewTenantRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	dealRepo := repository.NewDealRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	runner := worker.StartNotificationWorker(ctx, notificationService, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		TenantRepo: tenantRepo,
		Transactor: tx,
		Revocation: redis,
	})
	tenantService := service.NewTenantService(tenantRepo, userRepo, tx)
	accountService := service.NewAccountService(accountRepo, contactRepo, dispatcher, logger)
	contactService := service.NewContactService(contactRepo, dispatcher, logger)
	dealService := service.NewDealService(dealRepo, dispatcher, logger)
	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:    leadRepo,
		AccountRepo: accountRepo,
		ContactRepo: contactRepo,
		Transactor:  tx,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	activityService := service.NewActivityService(activityRepo, dispatcher, logger)
	noteService := service.NewNoteService(noteRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:             handlers.NewAuthHandler(authService),
		Tenants:          handlers.NewTenantsHandler(tenantService),
		Accounts:         handlers.NewAccountsHandler(accountService),
		Contacts:         handlers.NewContactsHandler(contactService),
		Deals:            handlers.NewDealsHandler(dealService),
		Leads:            handlers.NewLeadsHandler(leadService),
		Activities:       handlers.NewActivitiesHandler(activityService),
		Notes:            handlers.NewNotesHandler(noteService),
		AuthMiddleware:   auth.NewAuthMiddleware(authService.TokenManager(), userRepo, redis, logger),
		TenantMiddleware: auth.NewTenantMiddleware(tenantRepo, cfg.Tenancy.DefaultTenantID),
		Metrics:          metrics.Handler(),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	runner.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
