package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

var _ ports.Service = (*Service)(nil)

// Service coordinates checkout, payment confirmation, and order lifecycle.
// Gateway calls happen outside repository transactions; a gateway failure
// leaves the order pending and unpaid for later reconciliation.
type Service struct {
	repo     ports.Repository
	products catalogports.Repository
	cart     catalogports.CartRepository
	gateway  ports.PaymentGateway
	now      func() time.Time
	newID    func() string
}

type Option func(*Service)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOrderNumberSource overrides order-number generation for tests.
func WithOrderNumberSource(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(repo ports.Repository, products catalogports.Repository, cart catalogports.CartRepository, gateway ports.PaymentGateway, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		products: products,
		cart:     cart,
		gateway:  gateway,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckoutCOD prices the cart and creates the order, decrementing stock and
// clearing the cart in one transaction.
func (s *Service) CheckoutCOD(ctx context.Context, input ports.CheckoutInput) (*ports.OrderProjection, error) {
	order, err := s.buildOrder(ctx, input, domain.MethodCOD)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Checkout(ctx, order, true)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// CheckoutGateway prices the cart and creates a pending, unpaid order, then
// registers a payment intent with the gateway. Stock and cart are untouched
// until ConfirmPayment.
func (s *Service) CheckoutGateway(ctx context.Context, input ports.CheckoutInput) (*ports.OrderProjection, error) {
	order, err := s.buildOrder(ctx, input, domain.MethodGateway)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Checkout(ctx, order, false)
	if err != nil {
		return nil, mapError(err)
	}

	persisted := created.Entity
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, persisted.Total, persisted.Currency, persisted.OrderNumber)
	if err != nil {
		// The order stays pending and unpaid for later reconciliation.
		return nil, apperr.External(err, "payment gateway is unavailable, please retry the payment")
	}
	persisted.AttachGatewayOrder(gatewayOrderID)
	saved, err := s.repo.Save(ctx, persisted)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ConfirmPayment verifies the gateway signature and finalizes the order:
// stock decremented, cart cleared, order confirmed and paid, atomically.
func (s *Service) ConfirmPayment(ctx context.Context, input ports.ConfirmPaymentInput) (*ports.OrderProjection, error) {
	if !s.gateway.VerifySignature(input.GatewayOrderID, input.GatewayPaymentID, input.Signature) {
		return nil, apperr.Unauthorized("payment signature verification failed")
	}
	found, err := s.repo.GetByGatewayOrderID(ctx, input.GatewayOrderID)
	if err != nil {
		return nil, mapError(err)
	}
	order := found.Entity
	if err := order.ConfirmPayment(input.GatewayPaymentID); err != nil {
		return nil, mapError(err)
	}
	finalized, err := s.repo.Finalize(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return finalized, nil
}

// Cancel cancels a pending or confirmed order. Paid orders are refunded.
func (s *Service) Cancel(ctx context.Context, orderID, actorID int64) (*ports.OrderProjection, error) {
	found, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	order := found.Entity
	if order.UserID != actorID {
		return nil, apperr.Unauthorized("order belongs to another user")
	}
	wasPaid := order.Paid()
	if err := order.Cancel(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	if wasPaid {
		if err := s.gateway.Refund(ctx, order.GatewayPaymentID, order.Total); err != nil {
			return nil, apperr.External(err, "refund could not be initiated, please contact support")
		}
		order.MarkRefunded()
		saved, err = s.repo.Save(ctx, order)
		if err != nil {
			return nil, mapError(err)
		}
	}
	return saved, nil
}

// UpdateStatus applies an admin fulfilment transition.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) (*ports.OrderProjection, error) {
	found, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	order := found.Entity
	if err := order.UpdateStatus(domain.Status(status), s.now()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// MarkDelivered is the delivery transition.
func (s *Service) MarkDelivered(ctx context.Context, orderID int64) (*ports.OrderProjection, error) {
	return s.UpdateStatus(ctx, orderID, string(domain.StatusDelivered))
}

// GetByID loads an order, restricted to its owner.
func (s *Service) GetByID(ctx context.Context, orderID, userID int64) (*ports.OrderProjection, error) {
	found, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if found.Entity.UserID != userID {
		return nil, apperr.Unauthorized("order belongs to another user")
	}
	return found, nil
}

// ListByUser returns one page of the user's orders.
func (s *Service) ListByUser(ctx context.Context, userID int64, page pagination.Request) (pagination.Page[*ports.OrderProjection], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return pagination.Page[*ports.OrderProjection]{}, mapError(err)
	}
	return pagination.NewPage(items, page, total), nil
}

// ListAll returns one page of all orders.
func (s *Service) ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*ports.OrderProjection], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListAll(ctx, page)
	if err != nil {
		return pagination.Page[*ports.OrderProjection]{}, mapError(err)
	}
	return pagination.NewPage(items, page, total), nil
}

// buildOrder reads the cart, validates stock, prices it, and materializes the
// order aggregate. No persistence happens here.
func (s *Service) buildOrder(ctx context.Context, input ports.CheckoutInput, method string) (*domain.Order, error) {
	lines, err := s.cart.ListLines(ctx, input.UserID)
	if err != nil {
		return nil, mapError(err)
	}
	if len(lines) == 0 {
		return nil, mapError(catalogdomain.ErrEmptyCart)
	}

	pricing := make([]domain.PricingLine, 0, len(lines))
	for _, line := range lines {
		found, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, mapError(err)
		}
		product := found.Entity
		if !product.HasStock(line.Quantity) {
			return nil, apperr.Conflict("insufficient stock for %s", product.Name)
		}
		imageURL := ""
		if len(product.ImageURLs) > 0 {
			imageURL = product.ImageURLs[0]
		}
		pricing = append(pricing, domain.PricingLine{
			ProductID:       product.ID,
			ProductName:     product.Name,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercent,
			Quantity:        line.Quantity,
			ImageURL:        imageURL,
		})
	}

	quote := domain.Price(pricing)
	order, err := domain.NewOrder(s.orderNumber(), input.UserID, method, quote,
		input.ShippingAddress, input.BillingAddress, input.SpecialInstructions)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (s *Service) orderNumber() string {
	return fmt.Sprintf("ORD-%s", s.newID())
}
