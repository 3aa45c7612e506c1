package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
)

type messageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMessageRepository creates a new contact message repository
func NewMessageRepository(db *sql.DB, logger *zap.Logger) *messageRepository {
	return &messageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.Name,
		message.Email,
		message.Message,
		message.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create contact message", zap.Error(err))
		return err
	}

	return nil
}
