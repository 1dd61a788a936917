package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/config"
	"github.com/Mavunaku/cvp3sea/internal/handler"
	"github.com/Mavunaku/cvp3sea/internal/middleware"
	"github.com/Mavunaku/cvp3sea/internal/repository/postgres"
	"github.com/Mavunaku/cvp3sea/internal/repository/storage"
	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/Mavunaku/cvp3sea/internal/tax"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title cvp3sea API
// @version 1.0
// @description Bookkeeping and tax deduction engine for a sole proprietor with rental properties and client work.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 access token as: Bearer <token>
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	yearRepo := postgres.NewFiscalYearRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)

	// Receipt storage is optional
	var receiptStore storage.ReceiptStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ReceiptStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, receipt uploads disabled")
	}

	// WebSocket hub doubles as the event publisher
	hub := websocket.NewHub()

	// Initialize services
	engine := tax.NewEngine(tax.Rates{Federal: cfg.Tax.FederalRate, NYState: cfg.Tax.NYStateRate})
	projectService := service.NewProjectService(yearRepo, projectRepo, ledgerRepo, assetRepo)
	projectService.SetEventPublisher(hub)
	ledgerService := service.NewLedgerService(ledgerRepo, projectRepo, projectService)
	ledgerService.SetEventPublisher(hub)
	ledgerService.SetReceiptStore(receiptStore)
	assetService := service.NewAssetService(assetRepo, projectRepo, projectService)
	assetService.SetEventPublisher(hub)
	receiptService := service.NewReceiptService(receiptStore, ledgerRepo)
	receiptService.SetEventPublisher(hub)
	taxService := service.NewTaxService(engine, ledgerRepo, assetRepo, projectRepo, projectService)

	// Initialize auth middleware; a zero value lets every request through
	authMiddleware := &middleware.AuthMiddleware{}
	if cfg.AuthEnabled() {
		authMiddleware, err = middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth middleware")
		}
	} else {
		log.Warn().Msg("AUTH0_DOMAIN not set, API authentication disabled")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// Initialize handlers
	projectHandler := handler.NewProjectHandler(projectService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	assetHandler := handler.NewAssetHandler(assetService)
	taxHandler := handler.NewTaxHandler(taxService)
	wsHandler := handler.NewWebSocketHandler(hub, authMiddleware, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware; swagger UI needs inline scripts
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.OpenAPI3Handler([]handler.Server{
		{URL: "http://localhost:" + cfg.Port + "/api/v1", Description: "Local Development"},
	}))

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, projectHandler, ledgerHandler, receiptHandler, assetHandler, taxHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	rateLimiter.Stop()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
