package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
)

// ImagePayload is one blob-store image on the wire. Data marshals as
// base64, which is what the resolver client decodes.
type ImagePayload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

func toImagePayload(image domain.StoreImage) ImagePayload {
	return ImagePayload{
		Name: image.Name,
		Data: image.Data,
	}
}

// HandleGetImages handles GET /images. Exactly one of category or name
// must be provided; queries are read-only.
func HandleGetImages(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		name := c.Query("name")

		if category != "" {
			images, err := repos.Image.ListByCategory(c.Request.Context(), category)
			if err != nil {
				logger.Error("Failed to list images", zap.String("category", category), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch images"})
				return
			}

			payload := make([]ImagePayload, len(images))
			for i, image := range images {
				payload[i] = toImagePayload(image)
			}
			c.JSON(http.StatusOK, gin.H{"images": payload})
			return
		}

		if name != "" {
			image, err := repos.Image.GetByName(c.Request.Context(), name)
			if err != nil {
				logger.Error("Failed to get image", zap.String("name", name), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch image"})
				return
			}

			if image == nil {
				c.JSON(http.StatusOK, gin.H{"image": nil})
				return
			}
			c.JSON(http.StatusOK, gin.H{"image": toImagePayload(*image)})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "missing category or name parameter"})
	}
}
