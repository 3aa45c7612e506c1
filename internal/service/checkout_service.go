package service

import (
	"context"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

// CheckoutForm is the shipping information submitted at checkout
type CheckoutForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PaymentMethod string `json:"payment_method"`
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ErrSubmissionInFlight is returned while a previous order submission
// for the same session is still outstanding
var ErrSubmissionInFlight = &errors.ErrValidation{
	Code:    "order in progress",
	Message: "An order submission is already in progress.",
}

type CheckoutService struct {
	repos  *repository.Repositories
	pricer *Pricer
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repos *repository.Repositories, pricer *Pricer, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		repos:    repos,
		pricer:   pricer,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// ValidateCheckout checks the form and cart, short-circuiting on the
// first failure: required fields, then email shape, then cart contents.
func (s *CheckoutService) ValidateCheckout(form CheckoutForm, lines []cart.Line) error {
	if form.Name == "" || form.Email == "" || form.Phone == "" || form.Address == "" || form.City == "" {
		return &errors.ErrValidation{
			Code:    "missing information",
			Message: "Please fill in all required fields.",
		}
	}

	if !emailPattern.MatchString(form.Email) {
		return &errors.ErrValidation{
			Code:    "invalid email",
			Message: "Please enter a valid email address.",
		}
	}

	if len(lines) == 0 {
		return &errors.ErrValidation{
			Code:    "empty cart",
			Message: "Your cart is empty.",
		}
	}

	return nil
}

// Totals prices the cart without submitting
func (s *CheckoutService) Totals(lines []cart.Line) Totals {
	return s.pricer.ComputeTotals(lines)
}

// PlaceOrder validates the form against the session's cart, snapshots
// the cart into an order with the grand total, and submits it. The cart
// is cleared only after a successful submission; on store failure it is
// left untouched so the user can retry. A second submission for the
// same session is rejected while one is outstanding.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, form CheckoutForm, store *cart.Store) (*domain.Order, error) {
	s.mu.Lock()
	if s.inFlight[sessionID] {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.inFlight[sessionID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}()

	lines := store.Lines()

	if err := s.ValidateCheckout(form, lines); err != nil {
		return nil, err
	}

	totals := s.pricer.ComputeTotals(lines)

	paymentMethod := form.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			ImageURL:  line.ImageURL,
		}
	}

	order := &domain.Order{
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		ShippingAddress: form.Address,
		City:            form.City,
		PaymentMethod:   paymentMethod,
		Items:           items,
		TotalAmount:     totals.GrandTotal,
		Status:          domain.OrderStatusPending,
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		// cart untouched so the user can retry
		s.logger.Error("Failed to submit order", zap.Error(err))
		return nil, err
	}

	if err := store.Clear(); err != nil {
		// the order is placed; a stale cart file is recoverable
		s.logger.Warn("Failed to clear cart after order placement",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	return order, nil
}
