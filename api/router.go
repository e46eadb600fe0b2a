package api

import (
	"shopcore/api/health"
	"shopcore/api/middleware"
	"shopcore/api/order"
	"shopcore/config"

	"github.com/gin-gonic/gin"
)

// Router route configuration.
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	orderController  *order.Controller
}

// NewRouter creates the router with the middleware chain applied.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	orderController *order.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: request ID first so everything after
	// it can log with one.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		orderController:  orderController,
	}
}

// SetupRoutes registers all routes.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
