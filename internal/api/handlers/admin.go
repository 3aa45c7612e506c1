package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/internal/service"
	"github.com/hsapparel/storefront/pkg/errors"
)

// OrderResponse represents an order in admin responses
type OrderResponse struct {
	ID              string             `json:"id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address"`
	City            string             `json:"city"`
	PaymentMethod   string             `json:"payment_method"`
	Items           []domain.OrderItem `json:"items"`
	TotalAmount     int64              `json:"total_amount"`
	Status          domain.OrderStatus `json:"status"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toOrderResponse(order domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		City:            order.City,
		PaymentMethod:   order.PaymentMethod,
		Items:           order.Items,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleListOrders handles GET /v1/admin/orders with an optional
// status filter
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *domain.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := domain.OrderStatus(raw)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
		}

		orders, err := repos.Order.List(c.Request.Context(), status)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]OrderResponse, len(orders))
		for i, order := range orders {
			responses[i] = toOrderResponse(order)
		}
		c.JSON(http.StatusOK, gin.H{"orders": responses})
	}
}

// HandleGetOrder handles GET /v1/admin/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(*order))
	}
}

// HandleUpdateOrderStatus handles POST /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		newStatus := domain.OrderStatus(req.Status)
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.UpdateStatus(c.Request.Context(), orderID, newStatus); err != nil {
			switch err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				logger.Error("Failed to update order status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": req.Status})
	}
}
