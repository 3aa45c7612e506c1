package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/pkg/errors"
)

type subscriberRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubscriberRepository creates a new newsletter subscriber repository
func NewSubscriberRepository(db *sql.DB, logger *zap.Logger) *subscriberRepository {
	return &subscriberRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, subscribed_at)
		VALUES ($1, $2, $3)
	`

	if subscriber.ID == uuid.Nil {
		subscriber.ID = uuid.New()
	}
	if subscriber.SubscribedAt.IsZero() {
		subscriber.SubscribedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		subscriber.ID,
		subscriber.Email,
		subscriber.SubscribedAt,
	)

	if err != nil {
		// unique_violation on the email column means already subscribed
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrDuplicate{Resource: "subscriber", Key: subscriber.Email}
		}
		r.logger.Error("Failed to create subscriber", zap.Error(err))
		return err
	}

	return nil
}
