package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hsapparel/storefront/internal/domain"
)

// ProductSort selects the ordering of a product listing
type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceAsc  ProductSort = "price-asc"
	ProductSortPriceDesc ProductSort = "price-desc"
	ProductSortNameAsc   ProductSort = "name"
)

// ProductFilter narrows a product listing. Nil fields are ignored.
type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *int64
	MaxPrice   *int64
	Featured   *bool
	Sort       ProductSort
	Limit      int
}

type CategoryRepository interface {
	// List returns all categories ordered by name
	List(ctx context.Context) ([]domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	// GetBySlug returns the product with its category joined
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// Related returns up to limit products sharing the category,
	// excluding the product itself
	Related(ctx context.Context, categoryID uuid.UUID, excludeID uuid.UUID, limit int) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// List returns orders newest first, optionally filtered by status
	List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

type SubscriberRepository interface {
	// Create returns *errors.ErrDuplicate when the email is already
	// subscribed
	Create(ctx context.Context, subscriber *domain.Subscriber) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.ContactMessage) error
}

type ImageRepository interface {
	// ListByCategory returns images ordered by ascending id
	ListByCategory(ctx context.Context, category string) ([]domain.StoreImage, error)
	// GetByName returns nil, nil when no image matches
	GetByName(ctx context.Context, name string) (*domain.StoreImage, error)
	Upsert(ctx context.Context, image *domain.StoreImage) error
}

// Repositories bundles all repository implementations
type Repositories struct {
	Category   CategoryRepository
	Product    ProductRepository
	Order      OrderRepository
	Subscriber SubscriberRepository
	Message    MessageRepository
	Image      ImageRepository
}
