package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/api/middleware"
	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/service"
)

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	UnitPrice int64  `json:"unit_price" binding:"required,min=0"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size" binding:"required"`
	ImageURL  string `json:"image_url"`
}

// SetQuantityRequest updates one line's quantity exactly
type SetQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartResponse is the session's cart with derived aggregates
type CartResponse struct {
	Lines      []cart.Line    `json:"lines"`
	TotalItems int            `json:"total_items"`
	Totals     service.Totals `json:"totals"`
}

func sessionStore(c *gin.Context, carts *cart.Manager, logger *zap.Logger) (*cart.Store, string, bool) {
	sessionID, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no cart session"})
		return nil, "", false
	}

	store, err := carts.Get(sessionID)
	if err != nil {
		logger.Error("Failed to open cart store", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return nil, "", false
	}

	return store, sessionID, true
}

func cartResponse(store *cart.Store, checkout *service.CheckoutService) CartResponse {
	lines := store.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponse{
		Lines:      lines,
		TotalItems: store.TotalItems(),
		Totals:     checkout.Totals(lines),
	}
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := sessionStore(c, carts, logger)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(store, checkout))
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		store, _, ok := sessionStore(c, carts, logger)
		if !ok {
			return
		}

		line := cart.Line{
			ProductID: productID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			Quantity:  req.Quantity,
			Size:      req.Size,
			ImageURL:  req.ImageURL,
		}
		if err := store.AddItem(line); err != nil {
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, checkout))
	}
}

// HandleSetCartQuantity handles PUT /v1/cart/items. A quantity of zero
// or less removes the line.
func HandleSetCartQuantity(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		store, _, ok := sessionStore(c, carts, logger)
		if !ok {
			return
		}

		if err := store.SetQuantity(productID, req.Size, req.Quantity); err != nil {
			logger.Error("Failed to set cart quantity", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, checkout))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items
func HandleRemoveCartItem(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Query("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}
		size := c.Query("size")
		if size == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing size"})
			return
		}

		store, _, ok := sessionStore(c, carts, logger)
		if !ok {
			return
		}

		if err := store.RemoveItem(productID, size); err != nil {
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, checkout))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, _, ok := sessionStore(c, carts, logger)
		if !ok {
			return
		}

		if err := store.Clear(); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(store, checkout))
	}
}
