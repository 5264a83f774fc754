package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/academiebarbier/marcel-backend/internal/adapters/cache"
	"github.com/academiebarbier/marcel-backend/internal/adapters/database"
	"github.com/academiebarbier/marcel-backend/internal/adapters/events"
	sessionstore "github.com/academiebarbier/marcel-backend/internal/adapters/session"
	"github.com/academiebarbier/marcel-backend/internal/api/handlers"
	"github.com/academiebarbier/marcel-backend/internal/api/routes"
	"github.com/academiebarbier/marcel-backend/internal/application/services"
	"github.com/academiebarbier/marcel-backend/internal/domain/providers"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/clients/postgres"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/clients/redis"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/notifications"
	"github.com/academiebarbier/marcel-backend/internal/infrastructure/observability"
	"github.com/academiebarbier/marcel-backend/pkg/config"
	"github.com/academiebarbier/marcel-backend/pkg/secrets"
)

func main() {
	// secrets land in the environment before the config snapshot is taken
	if loaded, err := secrets.Apply(context.Background(), secrets.FromEnv()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load secrets from Vault: %v\n", err)
		os.Exit(1)
	} else if loaded > 0 {
		fmt.Fprintf(os.Stderr, "loaded %d secrets from Vault\n", loaded)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry tracing is optional, the assistant runs without it
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Sessions live in Redis when available, in memory otherwise
	var store providers.SessionStore
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory sessions")
		store = sessionstore.NewMemoryStore(cfg.Session.TTL, nil)
	} else {
		defer redisClient.Close()
		store = sessionstore.NewRedisStore(cache.NewRedisAdapter(redisClient), cfg.Session.TTL)
		log.Info().Msg("Redis session store initialized")
	}

	// Booking persistence is optional too: without Postgres the assistant
	// still converses, confirmed bookings just stay in the logs
	var bookingService *services.BookingService
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unavailable, bookings will not be persisted")
	} else {
		defer pgClient.Close()

		var sender providers.MessageSender
		if cfg.Twilio.Configured() {
			twilioSender, err := notifications.NewTwilioSender(&cfg.Twilio)
			if err != nil {
				log.Warn().Err(err).Msg("failed to create Twilio sender")
			} else {
				sender = twilioSender
			}
		}

		var eventBus providers.EventBus
		if redisClient != nil {
			eventBus = events.NewRedisEventBus(redisClient)
			defer eventBus.Close()
		}

		bookingService = services.NewBookingService(database.NewBookingAdapter(pgClient), sender, eventBus, metrics)
		log.Info().Msg("booking persistence initialized")
	}

	analyzer := services.NewContextAnalyzer(services.DefaultPatterns())
	composer := services.NewResponseComposer(services.DefaultCatalog())
	conversations := services.NewConversationService(analyzer, composer, store, bookingService, metrics)

	smsHandler := handlers.NewSMSWebhookHandler(conversations, cfg.Twilio.AuthToken, os.Getenv("PUBLIC_BASE_URL"))
	router := routes.NewRouter(smsHandler, metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
}
