package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ideaflow/internal/api/http"
	"github.com/spec-kit/ideaflow/internal/api/http/handlers"
	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/events"
	"github.com/spec-kit/ideaflow/internal/observability"
	"github.com/spec-kit/ideaflow/internal/persistence"
	"github.com/spec-kit/ideaflow/internal/repository"
	"github.com/spec-kit/ideaflow/internal/service"
	"github.com/spec-kit/ideaflow/internal/worker"
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

	store, err := persistence.NewBlobStore(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	if cfg.Auth.OwnerSecretHash == "" {
		logger.Warn("AUTH_OWNER_SECRET_HASH not set; owner registration disabled")
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, logger, cfg.Notification)

	userRepo := repository.NewUserRepository(store)
	pendingRepo := repository.NewPendingDeveloperRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	ideaRepo := repository.NewIdeaRepository(store)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	accounts := service.NewAccountService(cfg.Auth, service.AccountDependencies{
		UserRepo:    userRepo,
		PendingRepo: pendingRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
	})
	sessions := service.NewSessionManager(cfg.Auth, service.SessionDependencies{
		Accounts:    accounts,
		SessionRepo: sessionRepo,
		Tokens:      tokens,
		Logger:      logger,
	})
	workflow := service.NewWorkflowEngine(service.WorkflowDependencies{
		IdeaRepo:   ideaRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	})
	ideas := service.NewIdeaService(service.IdeaDependencies{
		IdeaRepo:   ideaRepo,
		Accounts:   accounts,
		Workflow:   workflow,
		Dispatcher: dispatcher,
	})
	contact := service.NewContactService(cfg.Contact, dispatcher, nil)

	if cfg.App.SeedDemoIdeas {
		seeded, err := service.NewSeeder(ideaRepo, userRepo, cfg.Auth.BcryptCost).SeedIdeas(ctx)
		if err != nil {
			logger.Fatal("failed to seed demo ideas", zap.Error(err))
		}
		logger.Info("demo ideas seeded", zap.Int("count", seeded))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env != "development",
		Immutable:             true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Backend, store),
		Auth:           handlers.NewAuthHandler(accounts, sessions),
		Customer:       handlers.NewCustomerHandler(ideas),
		Developer:      handlers.NewDeveloperHandler(ideas),
		Owner:          handlers.NewOwnerHandler(ideas, accounts),
		Contact:        handlers.NewContactHandler(contact),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions),
		RateLimiter:    httptransport.NewIPRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst),
		Metrics:        metrics,
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
