package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

func seedOrder(t *testing.T, orders *fakeOrderRepo, status domain.OrderStatus) uuid.UUID {
	t.Helper()
	order := &domain.Order{Status: status}
	require.NoError(t, orders.Create(context.Background(), order))
	order.Status = status
	return order.ID
}

func TestUpdateStatus_AllowedTransition(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := NewOrderService(&repository.Repositories{Order: orders}, zap.NewNop())
	id := seedOrder(t, orders, domain.OrderStatusPending)

	require.NoError(t, svc.UpdateStatus(context.Background(), id, domain.OrderStatusConfirmed))

	order, err := orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
}

func TestUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	cases := []struct {
		from domain.OrderStatus
		to   domain.OrderStatus
	}{
		{domain.OrderStatusPending, domain.OrderStatusShipped},
		{domain.OrderStatusShipped, domain.OrderStatusCancelled},
		{domain.OrderStatusDelivered, domain.OrderStatusPending},
		{domain.OrderStatusCancelled, domain.OrderStatusConfirmed},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			orders := &fakeOrderRepo{}
			svc := NewOrderService(&repository.Repositories{Order: orders}, zap.NewNop())
			id := seedOrder(t, orders, tc.from)

			err := svc.UpdateStatus(context.Background(), id, tc.to)
			require.Error(t, err)
			_, ok := err.(*errors.ErrInvalidStateTransition)
			assert.True(t, ok, "expected invalid transition error, got %T", err)

			order, err := orders.GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tc.from, order.Status, "status must be unchanged")
		})
	}
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := NewOrderService(&repository.Repositories{Order: orders}, zap.NewNop())

	err := svc.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatusConfirmed)
	require.Error(t, err)
	_, ok := err.(*errors.ErrNotFound)
	assert.True(t, ok, "expected not found, got %T", err)
}
