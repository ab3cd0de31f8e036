package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/purelife/storefront/internal"
	"github.com/purelife/storefront/internal/billing"
	"github.com/purelife/storefront/internal/bootstrap"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/email"
	"github.com/purelife/storefront/internal/enhance"
	"github.com/purelife/storefront/internal/handler/admin"
	"github.com/purelife/storefront/internal/handler/api"
	"github.com/purelife/storefront/internal/handler/webhook"
	"github.com/purelife/storefront/internal/middleware"
	"github.com/purelife/storefront/internal/ratelimit"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/router"
	"github.com/purelife/storefront/internal/routes"
	"github.com/purelife/storefront/internal/service"
	"github.com/purelife/storefront/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := repository.New(pool)

	// Initialize Stripe billing provider
	logger.Info("Initializing billing provider...")
	billingProvider, err := billing.NewStripeProvider(billing.StripeConfig{
		APIKey:        cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize billing provider: %w", err)
	}
	logger.Info("Billing provider initialized")

	// Initialize email service
	emailSender := email.NewSMTPSender(&email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	})
	emailService, err := email.NewService(emailSender, cfg.Email.From, cfg.Email.FromName)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	// Initialize rate limiter for the enhancement endpoint.
	// Redis-backed when REDIS_ADDR is set so limits hold across instances,
	// in-memory otherwise.
	enhanceWindow := time.Duration(cfg.RateLimit.EnhanceWindowSeconds) * time.Second
	var enhanceLimiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		defer redisClient.Close()
		enhanceLimiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.EnhanceLimit, enhanceWindow, "enhance")
		logger.Info("Rate limiting backed by Redis", "addr", cfg.Redis.Addr)
	} else {
		enhanceLimiter = ratelimit.NewFixedWindow(cfg.RateLimit.EnhanceLimit, enhanceWindow)
	}

	// Initialize AI enhancement provider
	geminiClient := enhance.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)

	// Initialize business metrics
	telemetry.InitBusinessMetrics("purelife")

	// Initialize services
	productService := service.NewProductService(repo)
	cartService := service.NewCartService(repo)
	userService := service.NewUserService(repo, cfg.SessionSecret)
	paymentService := service.NewPaymentService(repo, billingProvider)
	orderService := service.NewOrderService(repo, billingProvider, emailService, logger)
	reviewService := service.NewReviewService(repo)
	wishlistService := service.NewWishlistService(repo)
	contactService := service.NewContactService(repo, emailService, logger)
	contentService := service.NewContentService(repo)
	statsService := service.NewStatsService(repo)
	enhanceService := service.NewEnhanceService(geminiClient, enhanceLimiter)

	// Ensure the configured admin account exists
	if err := bootstrap.EnsureAdmin(ctx, repo, cfg.Admin, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// ==========================================================================
	// Build route dependencies
	// ==========================================================================

	secureCookie := cfg.Env == "prod"

	apiDeps := routes.APIDeps{
		Auth:     api.NewAuthHandler(userService, secureCookie),
		Products: api.NewProductHandler(productService, reviewService),
		Cart:     api.NewCartHandler(cartService),
		Payments: api.NewPaymentHandler(paymentService),
		Orders:   api.NewOrderHandler(orderService),
		Reviews:  api.NewReviewHandler(reviewService, userService),
		Wishlist: api.NewWishlistHandler(wishlistService),
		Profile:  api.NewProfileHandler(userService),
		Contact:  api.NewContactHandler(contactService),
		Content:  api.NewContentHandler(contentService),
	}

	adminDeps := routes.AdminDeps{
		Products:  admin.NewProductHandler(productService),
		Orders:    admin.NewOrderHandler(orderService),
		Stats:     admin.NewStatsHandler(statsService),
		Queries:   admin.NewQueryHandler(contactService),
		Customers: admin.NewCustomerHandler(userService),
		Content:   admin.NewContentHandler(contentService),
		Enhance:   api.NewEnhanceHandler(enhanceService),
	}

	webhookDeps := routes.WebhookDeps{
		Stripe: webhook.NewStripeHandler(billingProvider, orderService, cfg.Stripe.WebhookSecret, logger),
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("purelife")

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		// Relax CSP in development for easier debugging
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	// Configure rate limiting
	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		router.CORS([]string{cfg.BaseURL}),
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		middleware.WithClientIP(),
		router.Logger(logger),
		middleware.WithUser(cfg.SessionSecret),
		middleware.WithRequestLogger(logger),
		telemetry.SentryContextMiddleware(func(ctx context.Context) *telemetry.UserInfo {
			if user := domain.UserFromContext(ctx); user != nil {
				return &telemetry.UserInfo{ID: user.ID.String(), Email: user.Email}
			}
			return nil
		}),
	)

	// CORS preflight catch-all; the CORS middleware in the chain answers it
	r.Handle(http.MethodOptions, "/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register route groups
	routes.RegisterAPIRoutes(r, apiDeps)
	routes.RegisterAdminRoutes(r, adminDeps)
	routes.RegisterWebhookRoutes(r, webhookDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
