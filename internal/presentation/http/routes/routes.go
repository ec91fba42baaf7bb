package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/config"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	domainRepo "github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/handler"
	"github.com/sangkips/stockboard-api/internal/presentation/http/middleware"
	"github.com/sangkips/stockboard-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Expense   *handler.ExpenseHandler
	Purchase  *handler.PurchaseHandler
	Credit    *handler.CreditHandler
	Debit     *handler.DebitHandler
	Proforma  *handler.ProformaHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
}

const (
	admin  = enum.RoleAdmin
	keeper = enum.RoleKeeper
	seller = enum.RoleSeller
)

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
		// Public routes, limited per client IP
		auth := v1.Group("/auth")
		auth.Use(deps.RateLimiter.Middleware())
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		// Protected routes, limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetSummary)
	protected.GET("/dashboard/chart", h.Dashboard.GetChart)

	registerUserRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerSaleRoutes(protected, h, deps)
	registerExpenseRoutes(protected, h)
	registerPurchaseRoutes(protected, h)
	registerLedgerRoutes(protected, h)
	registerProformaRoutes(protected, h)
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	users.Use(middleware.RequireRole(admin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		// Sellers need the catalogue at the counter
		read := middleware.RequireRole(admin, keeper, seller)
		products.GET("", read, h.Product.List)
		products.GET("/low-stock", read, h.Product.GetLowStock)
		products.GET("/:id", read, h.Product.Get)

		write := middleware.RequireRole(admin, keeper)
		products.GET("/stock-value", write, h.Product.GetStockValue)
		products.POST("", write, h.Product.Create)
		products.PUT("/:id", write, h.Product.Update)
		products.DELETE("/:id", write, h.Product.Delete)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/summary", h.Sale.Summary)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.DELETE("/:id", middleware.RequireRole(admin), h.Sale.Delete)
	}
}

func registerExpenseRoutes(rg *gin.RouterGroup, h *Handlers) {
	expenses := rg.Group("/expenses")
	expenses.Use(middleware.RequireRole(admin))
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerPurchaseRoutes(rg *gin.RouterGroup, h *Handlers) {
	purchases := rg.Group("/purchases")
	purchases.Use(middleware.RequireRole(admin, keeper))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, h *Handlers) {
	credits := rg.Group("/credits")
	credits.Use(middleware.RequireRole(admin, seller))
	{
		credits.GET("", h.Credit.List)
		credits.POST("", h.Credit.Create)
		credits.GET("/:id", h.Credit.Get)
		credits.POST("/:id/payments", h.Credit.RecordPayment)
		credits.POST("/:id/settle", h.Credit.Settle)
		credits.DELETE("/:id", middleware.RequireRole(admin), h.Credit.Delete)
	}

	debits := rg.Group("/debits")
	debits.Use(middleware.RequireRole(admin, keeper))
	{
		debits.GET("", h.Debit.List)
		debits.POST("", h.Debit.Create)
		debits.GET("/:id", h.Debit.Get)
		debits.POST("/:id/payments", h.Debit.RecordPayment)
		debits.POST("/:id/settle", h.Debit.Settle)
		debits.DELETE("/:id", middleware.RequireRole(admin), h.Debit.Delete)
	}
}

func registerProformaRoutes(rg *gin.RouterGroup, h *Handlers) {
	proformas := rg.Group("/proformas")
	{
		proformas.GET("", h.Proforma.List)
		proformas.POST("", h.Proforma.Create)
		proformas.GET("/:id", h.Proforma.Get)
		proformas.DELETE("/:id", h.Proforma.Delete)
	}
}
