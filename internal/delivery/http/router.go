package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "botfolio/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler   *AuthHandler
	BotHandler    *BotHandler
	WalletHandler *WalletHandler
	MarketHandler *MarketHandler
	AdminHandler  *AdminHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for the health check to reduce noise
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	e.Validator = NewRequestValidator()

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "botfolio-api",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/register", config.AuthHandler.Register)
	}

	// Bot catalog (public)
	api.GET("/bots", config.BotHandler.List)
	api.GET("/bots/:id", config.BotHandler.Get)

	// User routes (protected with AuthMiddleware)
	user := api.Group("", custommiddleware.AuthMiddleware)
	{
		user.GET("/portfolio", config.WalletHandler.GetPortfolio)
		user.POST("/allocations", config.WalletHandler.Allocate)
		user.POST("/deposit", config.WalletHandler.Deposit)
		user.POST("/withdraw", config.WalletHandler.Withdraw)
		user.GET("/positions", config.MarketHandler.ListPositions)
		user.GET("/market/ohlc", config.MarketHandler.GetOHLC)
	}

	// Admin routes (protected with Auth + Admin middleware)
	admin := api.Group("/admin", custommiddleware.AuthMiddleware, custommiddleware.AdminMiddleware)
	{
		admin.POST("/bots", config.AdminHandler.CreateBot)
		admin.POST("/daily-stats", config.AdminHandler.CreateDailyStats)
		admin.GET("/pending-transactions", config.AdminHandler.ListPendingTransactions)
		admin.POST("/transactions/:id/approve", config.AdminHandler.ApproveTransaction)
		admin.POST("/transactions/:id/reject", config.AdminHandler.RejectTransaction)
		admin.GET("/users", config.AdminHandler.ListUsers)
	}
}
