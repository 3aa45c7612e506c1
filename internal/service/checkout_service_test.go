package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

// fakeOrderRepo records created orders and can fail or block on demand
type fakeOrderRepo struct {
	created []*domain.Order
	err     error
	// entered is signaled once when Create is reached
	entered chan struct{}
	// block, when set, stalls Create until closed
	block chan struct{}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return f.err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Status = domain.OrderStatusPending
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, order := range f.created {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (f *fakeOrderRepo) List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	order.Status = status
	return nil
}

func newTestCheckout(orders *fakeOrderRepo) *CheckoutService {
	repos := &repository.Repositories{Order: orders}
	return NewCheckoutService(repos, defaultPricer(), zap.NewNop())
}

func validForm() CheckoutForm {
	return CheckoutForm{
		Name:          "Ahmed Khan",
		Email:         "ahmed@example.com",
		Phone:         "03001234567",
		Address:       "12 Zamzama Lane",
		City:          "Karachi",
		PaymentMethod: "cod",
	}
}

func cartWith(t *testing.T, lines ...cart.Line) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(nil)
	require.NoError(t, err)
	for _, line := range lines {
		require.NoError(t, store.AddItem(line))
	}
	return store
}

func sampleLine() cart.Line {
	return cart.Line{
		ProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Linen Dress Pants",
		UnitPrice: 3000,
		Quantity:  1,
		Size:      "M",
		ImageURL:  "store://Linen trousers/img-1.jpg",
	}
}

func assertValidationCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*errors.ErrValidation)
	require.True(t, ok, "expected validation error, got %T", err)
	assert.Equal(t, code, verr.Code)
}

func TestValidateCheckout_Order(t *testing.T) {
	checkout := newTestCheckout(&fakeOrderRepo{})
	lines := []cart.Line{sampleLine()}

	form := validForm()
	form.Email = ""
	assertValidationCode(t, checkout.ValidateCheckout(form, lines), "missing information")

	form = validForm()
	form.Email = "bad"
	assertValidationCode(t, checkout.ValidateCheckout(form, lines), "invalid email")

	assertValidationCode(t, checkout.ValidateCheckout(validForm(), nil), "empty cart")

	assert.NoError(t, checkout.ValidateCheckout(validForm(), lines))
}

func TestValidateCheckout_MissingFieldsBeatBadEmail(t *testing.T) {
	checkout := newTestCheckout(&fakeOrderRepo{})

	// missing name is reported before the malformed email
	form := validForm()
	form.Name = ""
	form.Email = "bad"
	assertValidationCode(t, checkout.ValidateCheckout(form, []cart.Line{sampleLine()}), "missing information")
}

func TestPlaceOrder_Success(t *testing.T) {
	orders := &fakeOrderRepo{}
	checkout := newTestCheckout(orders)
	store := cartWith(t, sampleLine())

	order, err := checkout.PlaceOrder(context.Background(), "session-1", validForm(), store)
	require.NoError(t, err)
	require.Len(t, orders.created, 1)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "Ahmed Khan", order.CustomerName)
	assert.Equal(t, "cod", order.PaymentMethod)
	// 3000 >= 2000, free shipping
	assert.Equal(t, int64(3000), order.TotalAmount)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Linen Dress Pants", order.Items[0].Name)
	assert.Equal(t, "M", order.Items[0].Size)

	// cart cleared after successful placement
	assert.Empty(t, store.Lines())
}

func TestPlaceOrder_IncludesShippingFee(t *testing.T) {
	orders := &fakeOrderRepo{}
	checkout := newTestCheckout(orders)

	line := sampleLine()
	line.UnitPrice = 1999
	store := cartWith(t, line)

	order, err := checkout.PlaceOrder(context.Background(), "session-1", validForm(), store)
	require.NoError(t, err)
	assert.Equal(t, int64(2199), order.TotalAmount)
}

func TestPlaceOrder_StoreFailureLeavesCart(t *testing.T) {
	orders := &fakeOrderRepo{err: fmt.Errorf("connection refused")}
	checkout := newTestCheckout(orders)
	store := cartWith(t, sampleLine())

	_, err := checkout.PlaceOrder(context.Background(), "session-1", validForm(), store)
	require.Error(t, err)

	// cart untouched so the user can retry
	assert.Len(t, store.Lines(), 1)

	// the guard is released, a retry is allowed
	orders.err = nil
	_, err = checkout.PlaceOrder(context.Background(), "session-1", validForm(), store)
	assert.NoError(t, err)
}

func TestPlaceOrder_ValidationFailureLeavesCart(t *testing.T) {
	orders := &fakeOrderRepo{}
	checkout := newTestCheckout(orders)
	store := cartWith(t, sampleLine())

	form := validForm()
	form.Email = "bad"
	_, err := checkout.PlaceOrder(context.Background(), "session-1", form, store)
	assertValidationCode(t, err, "invalid email")
	assert.Len(t, store.Lines(), 1)
	assert.Empty(t, orders.created)
}

func TestPlaceOrder_RejectsConcurrentSubmission(t *testing.T) {
	orders := &fakeOrderRepo{
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	checkout := newTestCheckout(orders)
	store := cartWith(t, sampleLine())

	firstDone := make(chan error, 1)
	go func() {
		_, err := checkout.PlaceOrder(context.Background(), "session-1", validForm(), store)
		firstDone <- err
	}()

	// wait for the first submission to reach the order store
	select {
	case <-orders.entered:
	case <-time.After(1 * time.Second):
		t.Fatal("first submission never reached the order store")
	}

	_, err := checkout.PlaceOrder(context.Background(), "session-1", validForm(), store)
	assert.Equal(t, ErrSubmissionInFlight, err)

	close(orders.block)
	require.NoError(t, <-firstDone)
	require.Len(t, orders.created, 1)
}

func TestPlaceOrder_DefaultsPaymentMethod(t *testing.T) {
	orders := &fakeOrderRepo{}
	checkout := newTestCheckout(orders)
	store := cartWith(t, sampleLine())

	form := validForm()
	form.PaymentMethod = ""
	order, err := checkout.PlaceOrder(context.Background(), "session-1", form, store)
	require.NoError(t, err)
	assert.Equal(t, "cod", order.PaymentMethod)
}
