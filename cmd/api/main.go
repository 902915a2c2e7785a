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

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/identity"
	"storefront/internal/mailer"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)

	// Initialize external integrations
	images, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	var notifier service.Notifier = service.NopNotifier{}
	var mail *mailer.Mailer
	if cfg.SMTP.Enabled {
		mail, err = mailer.New(cfg.SMTP, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize mailer: %w", err)
		}
		notifier = mail
	} else {
		logger.Info().Msg("order confirmation email disabled (SMTP disabled)")
	}

	var dedup cache.Deduplicator = cache.NopDeduplicator{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, webhook deliveries will not be de-duplicated")
		} else {
			defer redisClient.Close()
			dedup = cache.NewRedisDeduplicator(redisClient, cache.DeliveryTTL, logger)
		}
	}

	var webhookVerifier handler.WebhookVerifier
	if cfg.Auth.WebhookSecret != "" {
		v, err := identity.NewWebhookVerifier(cfg.Auth.WebhookSecret)
		if err != nil {
			return fmt.Errorf("failed to initialize webhook verifier: %w", err)
		}
		webhookVerifier = v
	} else {
		logger.Warn().Msg("WEBHOOK_SECRET not set, identity webhooks will be rejected")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, images, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, notifier, logger)
	cartService := service.NewCartService(cartRepo, productRepo, userRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, userRepo, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, logger),
		Profile:  handler.NewProfileHandler(userService, logger),
		Webhook:  handler.NewWebhookHandler(webhookVerifier, dedup, userService, logger),
	}, router.Config{
		APIKey:        cfg.Auth.APIKey,
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Verifier:      identity.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			closeMailer(shutdownCtx, mail, logger)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
		closeMailer(shutdownCtx, mail, logger)
	}

	return nil
}

// closeMailer drains pending confirmations before the pool is closed.
func closeMailer(ctx context.Context, m *mailer.Mailer, logger zerolog.Logger) {
	if m == nil {
		return
	}
	if err := m.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("mailer did not drain before shutdown")
		return
	}
	logger.Info().Msg("mailer drained")
}
