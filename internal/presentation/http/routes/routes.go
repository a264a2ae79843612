package routes

import (
	"time"

	"github.com/feedworks/feedmill-api/internal/config"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	domainRepo "github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/internal/presentation/http/handler"
	"github.com/feedworks/feedmill-api/internal/presentation/http/middleware"
	"github.com/feedworks/feedmill-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Party     *handler.PartyHandler
	Product   *handler.ProductHandler
	Warehouse *handler.WarehouseHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/change-password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard",
		middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
		h.Dashboard.GetStats)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Parties
	registerPartyRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Warehouses
	registerWarehouseRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/due",
			middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
			h.Order.ListDue)
		orders.GET("/:id", h.Order.Get)

		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("",
			middleware.RequireRole(enum.RoleSalesman),
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Order.Create)

		// Approval chain
		orders.POST("/:id/forward",
			middleware.RequireRole(enum.RoleSalesManager, enum.RoleAdmin),
			h.Order.Forward)
		orders.POST("/:id/assign-warehouse",
			middleware.RequireRole(enum.RoleSalesAuthorizer, enum.RoleAdmin),
			h.Order.AssignWarehouse)
		orders.POST("/:id/confirm-availability",
			middleware.RequireRole(enum.RolePlantHead, enum.RoleAdmin),
			h.Order.ConfirmAvailability)
		orders.POST("/:id/approve",
			middleware.RequireRole(enum.RoleSalesAuthorizer, enum.RoleAdmin),
			h.Order.Approve)
		orders.POST("/:id/forward-to-plant",
			middleware.RequireRole(enum.RoleSalesAuthorizer, enum.RoleAdmin),
			h.Order.ForwardToPlant)
		orders.POST("/:id/dispatch",
			middleware.RequireRole(enum.RolePlantHead, enum.RoleAdmin),
			h.Order.Dispatch)
		orders.POST("/:id/confirm-delivery",
			middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
			h.Order.ConfirmDelivery)
		orders.POST("/:id/cancel", h.Order.Cancel)

		// Payments
		orders.POST("/:id/payments/advance/submit",
			middleware.RequireRole(enum.RoleSalesman, enum.RoleAdmin),
			h.Order.SubmitAdvancePayment)
		orders.POST("/:id/payments/advance/resolve",
			middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
			h.Order.ResolveAdvancePayment)
		orders.POST("/:id/payments/due",
			middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
			h.Order.RecordDuePayment)
		orders.POST("/:id/payments/due/resolve",
			middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
			h.Order.ResolveDuePayment)

		// Invoices
		orders.POST("/:id/invoices/:kind",
			middleware.RequireRole(enum.RoleAccountant, enum.RoleAdmin),
			h.Order.GenerateInvoice)

		orders.DELETE("/:id",
			middleware.RequireRole(enum.RoleSalesman, enum.RoleAdmin),
			h.Order.Delete)
	}
}

func registerPartyRoutes(protected *gin.RouterGroup, h *Handlers) {
	parties := protected.Group("/parties")
	{
		parties.GET("", h.Party.List)
		parties.GET("/:id", h.Party.Get)
		parties.POST("",
			middleware.RequireRole(enum.RoleSalesman),
			h.Party.Create)
		parties.POST("/:id/resolve",
			middleware.RequireRole(enum.RoleAdmin),
			h.Party.Resolve)
		parties.PUT("/:id", h.Party.Update)
		parties.DELETE("/:id",
			middleware.RequireRole(enum.RoleAdmin),
			h.Party.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("",
			middleware.RequireRole(enum.RoleAdmin),
			h.Product.Create)
		products.PUT("/:id",
			middleware.RequireRole(enum.RoleAdmin),
			h.Product.Update)
		products.DELETE("/:id",
			middleware.RequireRole(enum.RoleAdmin),
			h.Product.Delete)
	}
}

func registerWarehouseRoutes(protected *gin.RouterGroup, h *Handlers) {
	warehouses := protected.Group("/warehouses")
	{
		warehouses.GET("", h.Warehouse.List)
		warehouses.GET("/:id", h.Warehouse.Get)
		warehouses.GET("/:id/stocks", h.Warehouse.GetStocks)
		warehouses.POST("",
			middleware.RequireRole(enum.RoleAdmin),
			h.Warehouse.Create)
		warehouses.PUT("/:id",
			middleware.RequireRole(enum.RoleAdmin),
			h.Warehouse.Update)
		warehouses.POST("/:id/stocks",
			middleware.RequireRole(enum.RolePlantHead, enum.RoleAdmin),
			h.Warehouse.UpdateStock)
		warehouses.DELETE("/:id",
			middleware.RequireRole(enum.RoleAdmin),
			h.Warehouse.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
