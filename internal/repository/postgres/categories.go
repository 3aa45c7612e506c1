package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/pkg/errors"
)

type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, slug, description, image_url, created_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		var description, imageURL sql.NullString

		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&description,
			&imageURL,
			&category.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan category", zap.Error(err))
			return nil, err
		}

		category.Description = description.String
		category.ImageURL = imageURL.String
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `
		SELECT id, name, slug, description, image_url, created_at
		FROM categories
		WHERE slug = $1
	`

	var category domain.Category
	var description, imageURL sql.NullString

	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&description,
		&imageURL,
		&category.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "category", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get category by slug", zap.Error(err))
		return nil, err
	}

	category.Description = description.String
	category.ImageURL = imageURL.String

	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url
	`

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.ImageURL,
		category.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create category", zap.Error(err))
		return err
	}

	return nil
}
