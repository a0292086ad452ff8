package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campus-inventory/internal/adapters/http/middleware"
	"campus-inventory/internal/adapters/http/routes"
	"campus-inventory/internal/adapters/persistence/models"
	"campus-inventory/internal/adapters/persistence/repositories"
	"campus-inventory/internal/config"
	"campus-inventory/internal/core/services"
	"campus-inventory/internal/pkg/clock"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "campus-inventory/docs" // Swagger docs
)

// @title Campus Inventory API
// @version 1.0
// @description Inventory borrowing backend: QR borrower lookup, loans and reminder jobs.

// @contact.name API Support
// @contact.email it-support@campus.local

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	notificationLogRepo := repositories.NewNotificationLogRepository(db)

	// Seed admin account, plus sample data in dev
	if err := config.NewSeeder(adminRepo, cfg.Admin).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}
	if cfg.IsDev() {
		if err := config.SeedDemoData(db); err != nil {
			log.Printf("⚠️ Warning: Failed to seed demo data: %v", err)
		}
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(registry)

	// Initialize services
	clk := clock.NewReal(cfg.Scheduler.Location)

	mailService, err := services.NewMailService(cfg.Mail)
	if err != nil {
		log.Fatalf("❌ Failed to init mail service: %v", err)
	}

	resolver := services.NewIdentityResolver(studentRepo, employeeRepo, userRepo)
	reminderService := services.NewReminderService(loanRepo, notificationLogRepo, mailService, clk, metrics, cfg.Mail.AppName)
	archiveService := services.NewArchiveService(loanRepo, clk, metrics, cfg.Scheduler.RetentionDays)

	svc := &routes.Services{
		Auth:      services.NewAuthService(adminRepo, cfg.JWT, clk),
		Resolver:  resolver,
		Items:     services.NewItemService(itemRepo),
		Borrow:    services.NewBorrowService(resolver, itemRepo, loanRepo, clk),
		Reminders: reminderService,
		Archive:   archiveService,
	}

	// Start Cron Service for reminders and archiving
	cronService := services.NewCronService(cfg.Scheduler, reminderService, archiveService, metrics, cfg.IsDev())
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.Mail.AppName + " API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, svc, registry)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
