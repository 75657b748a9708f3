// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/subtrack/backend/internal/infra/metrics"
	"github.com/subtrack/backend/internal/integration/entrypoint/controller"
	"github.com/subtrack/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	subscriptionController *controller.SubscriptionController
	walletController       *controller.WalletController
	registerRateLimiter    *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	subscriptionController *controller.SubscriptionController,
	walletController *controller.WalletController,
	registerRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		subscriptionController: subscriptionController,
		walletController:       walletController,
		registerRateLimiter:    registerRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(metrics.Middleware())

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/metrics", metrics.Handler())
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Device registration (only setup if auth controller is available)
		if r.authController != nil && r.registerRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/devices", r.registerRateLimiter.Middleware(), r.authController.RegisterDevice)
			}
		}

		// Subscription routes (require a device token)
		if r.subscriptionController != nil && r.authMiddleware != nil {
			subscriptions := v1.Group("/subscriptions")
			subscriptions.Use(r.authMiddleware.Authenticate())
			{
				subscriptions.GET("", r.subscriptionController.List)
				subscriptions.POST("", r.subscriptionController.Create)
				subscriptions.GET("/stats", r.subscriptionController.Stats)
				subscriptions.GET("/upcoming", r.subscriptionController.Upcoming)
				subscriptions.GET("/export", r.subscriptionController.Export)
				subscriptions.POST("/sync", r.subscriptionController.Sync)
				subscriptions.PATCH("/:id", r.subscriptionController.Update)
				subscriptions.DELETE("/:id", r.subscriptionController.Delete)
				subscriptions.POST("/:id/toggle", r.subscriptionController.Toggle)
			}
		}

		// Wallet routes (require a device token)
		if r.walletController != nil && r.authMiddleware != nil {
			wallet := v1.Group("/wallet")
			wallet.Use(r.authMiddleware.Authenticate())
			{
				wallet.GET("/chains", r.walletController.Chains)
				wallet.GET("/balances/:chainId/:address", r.walletController.Balances)
				wallet.GET("/gas/:chainId", r.walletController.EstimateGas)
				wallet.GET("/streams", r.walletController.ListStreams)
				wallet.POST("/streams", r.walletController.CreateStream)
				wallet.DELETE("/streams/:id", r.walletController.CancelStream)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
