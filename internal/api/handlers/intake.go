package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/internal/service"
	"github.com/hsapparel/storefront/pkg/errors"
)

// SubscribeRequest is the newsletter signup payload
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// ContactRequest is the contact-form payload
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// HandleSubscribe handles POST /v1/newsletter. A duplicate email is
// reported as already subscribed, not as a failure.
func HandleSubscribe(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		intake := service.NewIntakeService(repos, logger)
		already, err := intake.Subscribe(c.Request.Context(), req.Email)
		if err != nil {
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   verr.Code,
					"message": verr.Message,
				})
				return
			}
			logger.Error("Failed to subscribe", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
			return
		}

		if already {
			c.JSON(http.StatusOK, gin.H{
				"status":  "already subscribed",
				"message": "This email is already subscribed to our newsletter.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "subscribed",
			"message": "Thank you for subscribing to our newsletter.",
		})
	}
}

// HandleContact handles POST /v1/contact
func HandleContact(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		intake := service.NewIntakeService(repos, logger)
		if err := intake.SubmitMessage(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   verr.Code,
					"message": verr.Message,
				})
				return
			}
			logger.Error("Failed to save contact message", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	}
}
