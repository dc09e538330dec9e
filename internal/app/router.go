package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"courier/internal/handler"
	"courier/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	OrderHandler   *handler.OrderHandler
	ClosureHandler *handler.ClosureHandler
	UserHandler    *handler.UserHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Order routes.
		orders := v1.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.CreateOrder)
			orders.GET("", deps.OrderHandler.ListOrders)
			orders.GET("/stats", deps.OrderHandler.GetStats)
			orders.GET("/:id", deps.OrderHandler.GetOrder)
			orders.PUT("/:id", deps.OrderHandler.UpdateOrder)
			orders.POST("/:id/assign", deps.OrderHandler.AssignDriver)
			orders.POST("/:id/deliver", deps.OrderHandler.DeliverOrder)
			orders.POST("/:id/cancel", deps.OrderHandler.CancelOrder)
		}

		// Daily closure routes.
		closure := v1.Group("/closure")
		{
			closure.GET("/candidates", deps.ClosureHandler.ListCandidates)
			closure.POST("/close", deps.ClosureHandler.CloseOrders)
			closure.POST("/reopen", deps.ClosureHandler.ReopenOrders)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.POST("", deps.UserHandler.CreateUser)
			users.GET("", deps.UserHandler.ListUsers)
			users.GET("/:uid", deps.UserHandler.GetUser)
		}
	}

	return router
}
