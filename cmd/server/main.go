package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"parcel/internal/app"
	"parcel/internal/config"
	"parcel/internal/handler"
	"parcel/internal/logger"
	internalRedis "parcel/internal/redis"
	"parcel/internal/repository/mongodb"
	"parcel/internal/service"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Log)
	gin.SetMode(gin.ReleaseMode)

	// Fatal only after run has returned, so its deferred cleanup has happened.
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("Server exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	// Initialize New Relic FIRST (before database so we can instrument it).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize New Relic")
		} else {
			log.Info().Str("app", cfg.NewRelic.AppName).Msg("New Relic enabled")
			defer nrApp.Shutdown(5 * time.Second)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	db, err := app.OpenDatabase(ctx, cfg.Database, nrApp, log)
	if err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()

	// Redis is optional and only backs Idempotency-Key replay.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = app.NewRedisClient(redisCtx, cfg.Redis, nrApp)
		redisCancel()
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, idempotency disabled")
		} else {
			defer redisClient.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
		}
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, log)

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	return serve(server, quit, log)
}

// serve runs server until a signal arrives on quit or the listener fails,
// then shuts it down. A listener failure is returned.
func serve(server *http.Server, quit <-chan os.Signal, log zerolog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	case runErr = <-serverErr:
		log.Error().Err(runErr).Msg("server error, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	return runErr
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	db *app.Database,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
	log zerolog.Logger,
) *http.Server {
	// Initialize repositories.
	parcelRepo := mongodb.NewParcelRepository(db.Collection(mongodb.ParcelsCollection))
	userRepo := mongodb.NewUserRepository(db.Collection(mongodb.UsersCollection))
	riderRepo := mongodb.NewRiderRepository(db.Collection(mongodb.RidersCollection))

	// Initialize services.
	parcelService := service.NewParcelService(parcelRepo)
	userService := service.NewUserService(userRepo)
	riderService := service.NewRiderService(riderRepo)

	// Initialize handlers.
	rootHandler := handler.NewRootHandler(db.Ping)
	parcelHandler := handler.NewParcelHandler(parcelService)
	userHandler := handler.NewUserHandler(userService)
	riderHandler := handler.NewRiderHandler(riderService)

	deps := app.RouterDeps{
		RootHandler:   rootHandler,
		ParcelHandler: parcelHandler,
		UserHandler:   userHandler,
		RiderHandler:  riderHandler,
		NewRelicApp:   nrApp,
		Logger:        log,
		CORSOrigin:    cfg.Server.CORSOrigin,
	}
	if redisClient != nil {
		deps.IdempotencyStore = internalRedis.NewIdempotencyStore(redisClient)
	}

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
