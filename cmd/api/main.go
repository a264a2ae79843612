package main

import (
	"log"
	"os"

	"github.com/feedworks/feedmill-api/internal/application/notify"
	"github.com/feedworks/feedmill-api/internal/application/service"
	"github.com/feedworks/feedmill-api/internal/config"
	"github.com/feedworks/feedmill-api/internal/infrastructure/database"
	"github.com/feedworks/feedmill-api/internal/infrastructure/repository"
	"github.com/feedworks/feedmill-api/internal/presentation/http/handler"
	"github.com/feedworks/feedmill-api/internal/presentation/http/routes"
	"github.com/feedworks/feedmill-api/pkg/email"
	"github.com/feedworks/feedmill-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Workflow event fanout
	notifiers := []notify.Notifier{notify.NewLogNotifier()}
	if cfg.Notify.OrdersEmail != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(emailService, cfg.Notify.OrdersEmail))
	}
	events := notify.NewFanout(notifiers...)

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, partyRepo, productRepo, warehouseRepo, counterRepo, events)
	invoiceService := service.NewInvoiceService(orderRepo)
	partyService := service.NewPartyService(partyRepo)
	productService := service.NewProductService(productRepo)
	warehouseService := service.NewWarehouseService(warehouseRepo, productRepo)
	userService := service.NewUserService(userRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Order:     handler.NewOrderHandler(orderService, invoiceService),
		Party:     handler.NewPartyHandler(partyService),
		Product:   handler.NewProductHandler(productService),
		Warehouse: handler.NewWarehouseHandler(warehouseService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
