package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates the admin-facing order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// UpdateStatus moves an order through its lifecycle, enforcing the
// allowed transitions
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return &errors.ErrInvalidStateTransition{
			From: string(order.Status),
			To:   string(newStatus),
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(newStatus)),
	)

	return nil
}
