package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/oliverbeck/peakstatus/internal/cache"
	"github.com/oliverbeck/peakstatus/internal/config"
	"github.com/oliverbeck/peakstatus/internal/database"
	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/handlers"
	"github.com/oliverbeck/peakstatus/internal/logging"
	"github.com/oliverbeck/peakstatus/internal/middleware"
	"github.com/oliverbeck/peakstatus/internal/routes"
	"github.com/oliverbeck/peakstatus/internal/services"
	"github.com/oliverbeck/peakstatus/internal/store"
	"github.com/oliverbeck/peakstatus/internal/token"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.AttachDB(database.DB)

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Services
	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTExpiry)
	userStore := store.NewUserStore(database.DB)
	statusStore := store.NewStatusStore(database.DB)
	authService := services.NewAuthService(userStore, codec)
	statusService := services.NewStatusService(statusStore)

	// Seed the first admin account if configured
	if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	handlers.SetDevelopment(cfg.Development())
	authHandler := handlers.NewAuthHandler(authService)
	statusHandler := handlers.NewStatusHandler(statusService)
	privacyHandler := handlers.NewPrivacyHandler()
	healthHandler := handlers.NewHealthHandler()

	// Rate-limit counter caches (swept every minute)
	apiCounters := cache.NewMemory(1 * time.Minute)
	authCounters := cache.NewMemory(1 * time.Minute)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler(cfg),
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, codec, authHandler, statusHandler, privacyHandler, healthHandler, apiCounters, authCounters)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	_ = apiCounters.Close()
	_ = authCounters.Close()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// errorHandler is the last-resort translator for errors that escape the
// route handlers. Detail is redacted outside development mode.
func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		apiCode := dto.CodeInternalError
		if code == fiber.StatusNotFound {
			apiCode = dto.CodeNotFound
		} else if code < 500 {
			apiCode = dto.CodeValidationError
		}

		if code >= 500 {
			slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			if cfg.Development() {
				message = err.Error()
			} else {
				message = "Internal server error"
			}
		}

		return c.Status(code).JSON(dto.Fail(apiCode, message))
	}
}
