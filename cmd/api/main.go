// @title                      Portal Shell API
// @version                    1.0
// @description                Session, navigation and dashboard composition for the innovation portal client.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ideaforge/portal-shell/internal/api"
	"github.com/ideaforge/portal-shell/internal/api/handler"
	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
	"github.com/ideaforge/portal-shell/internal/core/service"
	"github.com/ideaforge/portal-shell/internal/infrastructure/backend"
	mongodb "github.com/ideaforge/portal-shell/internal/infrastructure/db/mongo"
	redisdb "github.com/ideaforge/portal-shell/internal/infrastructure/db/redis"
	"github.com/ideaforge/portal-shell/internal/infrastructure/queue"
	"github.com/ideaforge/portal-shell/internal/pkg/config"
	"github.com/ideaforge/portal-shell/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portal-shell",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error disconnecting from MongoDB")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected")

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// --- Core services ---
	var directory ports.UserDirectory = client
	if cfg.Backend.Directory == config.DirectoryMongo {
		directory = mongodb.NewUserRepository(db)
	}
	log.Info().Str("directory", cfg.Backend.Directory).Msg("user directory selected")

	navigation := service.NewNavigationService(domain.DefaultNavigationCatalog())
	dashboard := service.NewDashboardService(directory, logger.Component("dashboard"))
	shell := service.NewShellService(navigation, dashboard)
	sessions := service.NewSessionService(client, service.NewClaimsReader(), logger.Component("session"))
	// The Mongo mirror cannot authenticate a bearer, so preference owners are
	// always confirmed by the backend.
	preferences := service.NewPreferenceService(mongodb.NewPreferenceRepository(db), client)

	bus := redisdb.NewSignalBus(rdb, logger.Component("signal-bus"))
	signals := service.NewSignalService(
		bus,
		mongodb.NewSignalRepository(db),
		redisdb.NewSignalDedup(rdb),
		logger.Component("signals"),
	)

	dispatcher := queue.NewDispatcher(cfg.Signals.Workers, signals, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		Shell:       shell,
		Preferences: preferences,
		Dispatcher:  dispatcher,
		Subscriber:  bus,
		HealthChecks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return redisdb.Ping(ctx, rdb, 2*time.Second) },
			"backend": client.Ping,
		},
		Cookie: handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Log:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	shutdown(e.Shutdown, dispatcher, log)
}

func shutdown(stopServer func(context.Context) error, dispatcher *queue.Dispatcher, log zerolog.Logger) {
	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := stopServer(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}
