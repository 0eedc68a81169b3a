package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/workshop-service/internal/api/http"
	"github.com/spec-kit/workshop-service/internal/api/http/handlers"
	"github.com/spec-kit/workshop-service/internal/auth"
	"github.com/spec-kit/workshop-service/internal/capacity"
	"github.com/spec-kit/workshop-service/internal/config"
	"github.com/spec-kit/workshop-service/internal/events"
	"github.com/spec-kit/workshop-service/internal/observability"
	"github.com/spec-kit/workshop-service/internal/persistence"
	"github.com/spec-kit/workshop-service/internal/repository"
	"github.com/spec-kit/workshop-service/internal/service"
	"github.com/spec-kit/workshop-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var store repository.Store
	if pg.Enabled() {
		store = repository.NewPostgresStore(pg.Pool)
	} else {
		store = repository.NewMemoryStore()
	}

	if cfg.App.SeedSampleWorkshops {
		seeded, err := repository.SeedSampleWorkshops(ctx, store)
		if err != nil {
			logger.Fatal("failed to seed workshops", zap.Error(err))
		}
		logger.Info("sample workshops seeded", zap.Int("count", seeded))
	}

	var guard capacity.Guard = capacity.NewLocalGuard()
	if cfg.App.CapacityLockBackend == config.LockBackendRedis {
		guard = capacity.NewRedisGuard(redis.Client, logger, cfg.Redis.LockTTL())
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	publisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("closing kafka writer", zap.Error(err))
		}
	}()
	worker.StartNotificationWorker(dispatcher, publisher, logger)

	workshopService := service.NewWorkshopService(service.WorkshopDependencies{
		WorkshopRepo:     store,
		RegistrationRepo: store,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		WorkshopRepo:     store,
		RegistrationRepo: store,
		Guard:            guard,
		Dispatcher:       dispatcher,
		Recorder:         metrics,
		Logger:           logger,
	})
	authService := service.NewAuthService(cfg.Auth, store, logger)
	if err := authService.BootstrapAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to create admin user", zap.Error(err))
	}

	app := httptransport.NewApp(httptransport.ServerConfig{
		AppName:        cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout(),
	}, logger, metrics, httptransport.RouteConfig{
		Prefix:         cfg.App.APIPrefix,
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Workshops:      handlers.NewWorkshopsHandler(workshopService),
		Registrations:  handlers.NewRegistrationsHandler(registrationService),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), store),
		RequireAdmin:   cfg.Auth.RequireAdmin,
	})

	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.Bool("postgres", pg.Enabled()),
			zap.String("capacity_lock", cfg.App.CapacityLockBackend))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
