package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/api/handlers"
	"github.com/hsapparel/storefront/internal/api/middleware"
	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/config"
	"github.com/hsapparel/storefront/internal/imaging"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	carts *cart.Manager,
	checkout *service.CheckoutService,
	resolver *imaging.Resolver,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Blob-store query interface, consumed by the image resolver
	router.GET("/images", handlers.HandleGetImages(repos, logger))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Catalog routes
		v1.GET("/categories", handlers.HandleListCategories(repos, logger))
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/:slug", handlers.HandleGetProduct(repos, resolver, logger))

		// Newsletter and contact intake
		v1.POST("/newsletter", handlers.HandleSubscribe(repos, logger))
		v1.POST("/contact", handlers.HandleContact(repos, logger))

		// Cart and checkout routes (cart session cookie)
		sessionRoutes := v1.Group("")
		sessionRoutes.Use(middleware.CartSessionMiddleware())
		{
			sessionRoutes.GET("/cart", handlers.HandleGetCart(carts, checkout, logger))
			sessionRoutes.POST("/cart/items", handlers.HandleAddCartItem(carts, checkout, logger))
			sessionRoutes.PUT("/cart/items", handlers.HandleSetCartQuantity(carts, checkout, logger))
			sessionRoutes.DELETE("/cart/items", handlers.HandleRemoveCartItem(carts, checkout, logger))
			sessionRoutes.DELETE("/cart", handlers.HandleClearCart(carts, checkout, logger))
			sessionRoutes.POST("/checkout", handlers.HandleCheckout(checkout, carts, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
			adminRoutes.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
			adminRoutes.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
