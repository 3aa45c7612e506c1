package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/service"
	"github.com/hsapparel/storefront/pkg/errors"
)

// CheckoutResponse confirms a placed order
type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
}

// HandleCheckout handles POST /v1/checkout. Validation failures come
// back with their specific message; a store failure is a generic
// retryable error and leaves the cart untouched.
func HandleCheckout(checkout *service.CheckoutService, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form service.CheckoutForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store, sessionID, ok := sessionStore(c, carts, logger)
		if !ok {
			return
		}

		order, err := checkout.PlaceOrder(c.Request.Context(), sessionID, form, store)
		if err != nil {
			if err == service.ErrSubmissionInFlight {
				c.JSON(http.StatusConflict, gin.H{
					"error":   service.ErrSubmissionInFlight.Code,
					"message": service.ErrSubmissionInFlight.Message,
				})
				return
			}
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   verr.Code,
					"message": verr.Message,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "order failed",
				"message": "Failed to place order. Please try again.",
			})
			return
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			OrderID:     order.ID.String(),
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount,
		})
	}
}
