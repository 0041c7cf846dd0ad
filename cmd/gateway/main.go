package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zatekoja/bookingdemo/internal/adapters/cache"
	"github.com/zatekoja/bookingdemo/internal/api/handlers"
	"github.com/zatekoja/bookingdemo/internal/api/middleware"
	"github.com/zatekoja/bookingdemo/internal/api/routes"
	"github.com/zatekoja/bookingdemo/internal/domain/providers"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/redis"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
	"github.com/zatekoja/bookingdemo/pkg/config"
)

func main() {
	// .env is optional, real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis is optional, the gateway works without response caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, response caching disabled")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	// One vendor client per process holds the vendor token
	vendorClient := zocdoc.NewClient(cfg.Vendor)
	vendorClient.SetMetrics(metrics)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(vendorClient)
	providerHandler := handlers.NewProviderHandler(vendorClient)
	availabilityHandler := handlers.NewAvailabilityHandler(vendorClient)
	insuranceHandler := handlers.NewInsuranceHandler(vendorClient)
	appointmentHandler := handlers.NewAppointmentHandler(vendorClient)
	webhookHandler := handlers.NewWebhookHandler(vendorClient)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		logger.Info().Msg("cache middleware initialized")
	}

	router := routes.NewRouter(
		authHandler,
		providerHandler,
		availabilityHandler,
		insuranceHandler,
		appointmentHandler,
		webhookHandler,
		cacheMiddleware,
		metrics,
		vendorClient.Authenticated,
	)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("gateway starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("gateway failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("gateway shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}

	logger.Info().Msg("gateway stopped")
}
