package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/imaging"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

// CategoryResponse represents a category in listing responses
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ProductResponse represents a product in listing responses
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	CategoryID  *string  `json:"category_id,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
}

// ProductDetailResponse adds the joined category, resolved images and
// related products
type ProductDetailResponse struct {
	ProductResponse
	Category *CategoryResponse `json:"category,omitempty"`
	Image    string            `json:"image"`
	Gallery  []string          `json:"gallery"`
	Related  []ProductResponse `json:"related"`
}

func toCategoryResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
	}
}

func toProductResponse(product domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Sizes:       product.Sizes,
		Stock:       product.Stock,
		Featured:    product.Featured,
	}
	if product.CategoryID != nil {
		id := product.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// HandleListCategories handles GET /v1/categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Category.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
			return
		}

		responses := make([]CategoryResponse, len(categories))
		for i, category := range categories {
			responses[i] = toCategoryResponse(category)
		}
		c.JSON(http.StatusOK, gin.H{"categories": responses})
	}
}

// HandleListProducts handles GET /v1/products with optional
// category/min_price/max_price/featured filters and a sort parameter
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter repository.ProductFilter

		if slug := c.Query("category"); slug != "" {
			category, err := repos.Category.GetBySlug(c.Request.Context(), slug)
			if err != nil {
				if _, ok := err.(*errors.ErrNotFound); ok {
					c.JSON(http.StatusOK, gin.H{"products": []ProductResponse{}})
					return
				}
				logger.Error("Failed to resolve category filter", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
				return
			}
			filter.CategoryID = &category.ID
		}

		if raw := c.Query("min_price"); raw != "" {
			price, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
				return
			}
			filter.MinPrice = &price
		}
		if raw := c.Query("max_price"); raw != "" {
			price, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
				return
			}
			filter.MaxPrice = &price
		}
		if raw := c.Query("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid featured flag"})
				return
			}
			filter.Featured = &featured
		}
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			filter.Limit = limit
		}
		filter.Sort = repository.ProductSort(c.DefaultQuery("sort", string(repository.ProductSortNewest)))

		products, err := repos.Product.List(c.Request.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, product := range products {
			responses[i] = toProductResponse(product)
		}
		c.JSON(http.StatusOK, gin.H{"products": responses})
	}
}

const relatedLimit = 4

// HandleGetProduct handles GET /v1/products/:slug with the category
// joined, the image gallery resolved and up to four related products
func HandleGetProduct(repos *repository.Repositories, resolver *imaging.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		product, err := repos.Product.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			return
		}

		resp := ProductDetailResponse{
			ProductResponse: toProductResponse(*product),
			Gallery:         resolver.Gallery(c.Request.Context(), *product, imaging.GalleryCount),
			Image:           resolver.PrimaryImage(c.Request.Context(), *product),
		}
		if product.Category != nil {
			category := toCategoryResponse(*product.Category)
			resp.Category = &category
		}

		if product.CategoryID != nil {
			related, err := repos.Product.Related(c.Request.Context(), *product.CategoryID, product.ID, relatedLimit)
			if err != nil {
				// related products are decoration, the page still renders
				logger.Warn("Failed to fetch related products", zap.Error(err))
			}
			resp.Related = make([]ProductResponse, len(related))
			for i, rel := range related {
				resp.Related[i] = toProductResponse(rel)
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}
