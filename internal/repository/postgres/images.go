package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
)

type imageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewImageRepository creates a new blob-store image repository
func NewImageRepository(db *sql.DB, logger *zap.Logger) *imageRepository {
	return &imageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *imageRepository) ListByCategory(ctx context.Context, category string) ([]domain.StoreImage, error) {
	query := `
		SELECT id, name, category, data, created_at
		FROM images
		WHERE category = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		r.logger.Error("Failed to query images by category", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var images []domain.StoreImage
	for rows.Next() {
		var image domain.StoreImage
		err := rows.Scan(
			&image.ID,
			&image.Name,
			&image.Category,
			&image.Data,
			&image.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan image", zap.Error(err))
			return nil, err
		}
		images = append(images, image)
	}

	return images, rows.Err()
}

func (r *imageRepository) GetByName(ctx context.Context, name string) (*domain.StoreImage, error) {
	query := `
		SELECT id, name, category, data, created_at
		FROM images
		WHERE name = $1
		LIMIT 1
	`

	var image domain.StoreImage
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&image.ID,
		&image.Name,
		&image.Category,
		&image.Data,
		&image.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get image by name", zap.Error(err))
		return nil, err
	}

	return &image, nil
}

func (r *imageRepository) Upsert(ctx context.Context, image *domain.StoreImage) error {
	query := `
		INSERT INTO images (name, category, data, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, category) DO UPDATE SET
			data = EXCLUDED.data,
			created_at = EXCLUDED.created_at
	`

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		image.Name,
		image.Category,
		image.Data,
		image.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to upsert image", zap.Error(err))
		return err
	}

	return nil
}
