package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/requisition-service/internal/api/http"
	"github.com/spec-kit/requisition-service/internal/api/http/handlers"
	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/cache"
	"github.com/spec-kit/requisition-service/internal/cloud"
	"github.com/spec-kit/requisition-service/internal/config"
	"github.com/spec-kit/requisition-service/internal/data"
	"github.com/spec-kit/requisition-service/internal/events"
	"github.com/spec-kit/requisition-service/internal/observability"
	"github.com/spec-kit/requisition-service/internal/service"
	"github.com/spec-kit/requisition-service/internal/worker"
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

	metrics := observability.NewMetrics()

	localStore := cache.Open(cfg.Cache, logger)
	defer localStore.Close() //nolint:errcheck

	remote := buildRemote(cfg, logger)
	client := cloud.NewClient(cloud.ClientOptions{
		Remote:       remote,
		Cache:        localStore,
		Logger:       logger,
		Metrics:      metrics,
		ReadyTimeout: cfg.Cloud.ReadyTimeout(),
		CacheTTL:     cfg.Cloud.CacheTTL(),
	})
	defer client.Close()

	dispatcher := events.NewInMemoryDispatcher()
	hasher := auth.NewHasher(cfg.Auth.SharedSecret)

	dataManager := data.NewManager(client, hasher, dispatcher, logger)
	dataManager.ConfigureSeed(cfg.Seed)
	if err := dataManager.Init(ctx); err != nil {
		logger.Fatal("failed to init data layer", zap.Error(err))
	}

	sessions := service.NewSessionStore(localStore)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Data:     dataManager,
		Sessions: sessions,
		Hasher:   hasher,
	}, logger)
	solicitationService := service.NewSolicitationService(dataManager, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), authService)

	syncWorker := worker.NewSyncWorker(client, dispatcher, cfg.Sync.Interval(), logger)
	syncWorker.Start(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, client),
		Auth:           handlers.NewAuthHandler(authService),
		Solicitations:  handlers.NewSolicitationsHandler(solicitationService),
		Catalog:        handlers.NewCatalogHandler(dataManager),
		Users:          handlers.NewUsersHandler(dataManager, hasher),
		Reports:        handlers.NewReportsHandler(dataManager),
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

// buildRemote selects the document backend; "none" forces cache-only mode.
func buildRemote(cfg *config.Config, logger *zap.Logger) cloud.RemoteStore {
	switch strings.ToLower(cfg.Cloud.Backend) {
	case "postgres":
		return cloud.NewPostgresStore(cfg.Postgres, logger)
	case "none":
		logger.Warn("no cloud backend configured; running cache-only")
		return nil
	default:
		return cloud.NewRedisStore(cfg.Redis, cfg.Cache.Namespace, logger)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
