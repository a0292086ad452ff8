package routes

import (
	"time"

	"campus-inventory/internal/adapters/http/handlers"
	"campus-inventory/internal/adapters/http/middleware"
	"campus-inventory/internal/config"
	"campus-inventory/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services groups the application services exposed over HTTP
type Services struct {
	Auth      *services.AuthService
	Resolver  *services.IdentityResolver
	Items     *services.ItemService
	Borrow    *services.BorrowService
	Reminders *services.ReminderService
	Archive   *services.ArchiveService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, svc *Services, registry *prometheus.Registry) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, config.HealthCheck)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	scanHandler := handlers.NewScanHandler(svc.Resolver)
	itemHandler := handlers.NewItemHandler(svc.Items)
	loanHandler := handlers.NewLoanHandler(svc.Borrow, svc.Reminders)
	jobHandler := handlers.NewJobHandler(svc.Reminders, svc.Archive)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	})))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.HTTPMetrics(registry))
	setupAPIV1Routes(apiV1, authHandler, scanHandler, itemHandler, loanHandler, jobHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	scanHandler *handlers.ScanHandler,
	itemHandler *handlers.ItemHandler,
	loanHandler *handlers.LoanHandler,
	jobHandler *handlers.JobHandler,
	cfg *config.Config,
) {
	// Auth routes
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Scan routes (public, used by the scanning kiosk)
	scanRoutes := router.Group("/scan", middleware.NoCacheHeaders())
	scanRoutes.Post("/resolve", middleware.AuthRateLimiter(), scanHandler.Resolve)

	// Item routes (Admin only)
	itemRoutes := router.Group("/items")
	itemRoutes.Use(middleware.AdminAuth(cfg))
	setupItemRoutes(itemRoutes, itemHandler)

	// Loan routes (Admin only)
	loanRoutes := router.Group("/loans")
	loanRoutes.Use(middleware.AdminAuth(cfg))
	loanRoutes.Use(middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler)

	// Manual job triggers (Admin only)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminAuth(cfg))
	setupJobRoutes(adminRoutes, jobHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AdminAuth(cfg), handler.Me)
}

// setupItemRoutes configures inventory routes
func setupItemRoutes(router fiber.Router, handler *handlers.ItemHandler) {
	router.Get("/", middleware.PrivateCacheHeaders(30*time.Second), handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", middleware.PrivateCacheHeaders(30*time.Second), handler.Get)
}

// setupLoanRoutes configures borrow and return routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Post("/borrow", handler.Borrow)
	router.Get("/:id", handler.Get)
	router.Get("/:id/notifications", handler.Notifications)
	router.Post("/:id/return", handler.Return)
}

// setupJobRoutes configures manual job triggers
func setupJobRoutes(router fiber.Router, handler *handlers.JobHandler) {
	router.Post("/reminders/run", middleware.StrictRateLimiter(), handler.RunReminders)
	router.Post("/archive/run", middleware.StrictRateLimiter(), handler.RunArchive)
}
