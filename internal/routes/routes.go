package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/oliverbeck/peakstatus/internal/config"
	"github.com/oliverbeck/peakstatus/internal/handlers"
	"github.com/oliverbeck/peakstatus/internal/middleware"
	"github.com/oliverbeck/peakstatus/internal/token"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	codec *token.Codec,
	authHandler *handlers.AuthHandler,
	statusHandler *handlers.StatusHandler,
	privacyHandler *handlers.PrivacyHandler,
	healthHandler *handlers.HealthHandler,
	apiCounters fiber.Storage,
	authCounters fiber.Storage,
) {
	authRequired := middleware.JWTProtected(cfg, codec)
	adminOnly := middleware.AdminRequired()

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP. Counters live in an
	// injected storage so they can be swapped for a shared store.
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           apiCounters,
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/privacy/policy", privacyHandler.Policy)

	// Auth: stricter limit, separate counter storage so keys don't collide
	// with the general limiter.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           authCounters,
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/admin/register", authRequired, adminOnly, authHandler.AdminRegister)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Get("/admins", authRequired, authHandler.ListAdmins)
	auth.Get("/users", authRequired, adminOnly, authHandler.ListUsers)
	auth.Delete("/users/:id", authRequired, adminOnly, authHandler.DeleteUser)

	// Status: reads for any authenticated role, writes admin-only.
	status := api.Group("/status", authRequired)
	status.Get("/", statusHandler.GetStatus)
	status.Post("/", adminOnly, statusHandler.CreateStatus)
	status.Put("/", adminOnly, statusHandler.UpdateStatus)
	status.Delete("/", adminOnly, statusHandler.DeleteStatus)
	status.Get("/history", statusHandler.GetHistory)
	status.Get("/stats", statusHandler.GetStats)
}
