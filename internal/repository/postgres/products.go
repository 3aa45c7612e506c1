package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `id, name, slug, description, price, category_id, image_url, images, sizes, stock, featured, created_at`

func scanProduct(scanner interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var product domain.Product
	var description, imageURL sql.NullString
	var categoryID uuid.NullUUID

	err := scanner.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&description,
		&product.Price,
		&categoryID,
		&imageURL,
		pq.Array(&product.Images),
		pq.Array(&product.Sizes),
		&product.Stock,
		&product.Featured,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`

	var conditions []string
	var args []interface{}

	addCondition := func(clause string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.CategoryID != nil {
		addCondition("category_id = $%d", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		addCondition("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("price <= $%d", *filter.MaxPrice)
	}
	if filter.Featured != nil {
		addCondition("featured = $%d", *filter.Featured)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	switch filter.Sort {
	case repository.ProductSortPriceAsc:
		query += " ORDER BY price ASC"
	case repository.ProductSortPriceDesc:
		query += " ORDER BY price DESC"
	case repository.ProductSortNameAsc:
		query += " ORDER BY name ASC"
	default:
		query += " ORDER BY created_at DESC"
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id,
		       p.image_url, p.images, p.sizes, p.stock, p.featured, p.created_at,
		       c.id, c.name, c.slug, c.description, c.image_url, c.created_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.slug = $1
	`

	var product domain.Product
	var description, imageURL sql.NullString
	var categoryID uuid.NullUUID
	var catID uuid.NullUUID
	var catName, catSlug, catDescription, catImageURL sql.NullString
	var catCreatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&description,
		&product.Price,
		&categoryID,
		&imageURL,
		pq.Array(&product.Images),
		pq.Array(&product.Sizes),
		&product.Stock,
		&product.Featured,
		&product.CreatedAt,
		&catID,
		&catName,
		&catSlug,
		&catDescription,
		&catImageURL,
		&catCreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get product by slug", zap.Error(err))
		return nil, err
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}
	if catID.Valid {
		product.Category = &domain.Category{
			ID:          catID.UUID,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDescription.String,
			ImageURL:    catImageURL.String,
			CreatedAt:   catCreatedAt.Time,
		}
	}

	return &product, nil
}

func (r *productRepository) Related(ctx context.Context, categoryID uuid.UUID, excludeID uuid.UUID, limit int) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1 AND id != $2
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, categoryID, excludeID, limit)
	if err != nil {
		r.logger.Error("Failed to query related products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Failed to scan related product", zap.Error(err))
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price, category_id,
		                      image_url, images, sizes, stock, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category_id = EXCLUDED.category_id,
			image_url = EXCLUDED.image_url,
			images = EXCLUDED.images,
			sizes = EXCLUDED.sizes,
			stock = EXCLUDED.stock,
			featured = EXCLUDED.featured
	`

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	var categoryID interface{}
	if product.CategoryID != nil {
		categoryID = *product.CategoryID
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		categoryID,
		product.ImageURL,
		pq.Array(product.Images),
		pq.Array(product.Sizes),
		product.Stock,
		product.Featured,
		product.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}
