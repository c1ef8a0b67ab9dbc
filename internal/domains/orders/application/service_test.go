package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/adapters/memory"
	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

const buyerID = int64(42)

type fakeGateway struct {
	createdOrders  []string
	createErr      error
	validSignature string
	refunds        []string
	refundErr      error
}

func (g *fakeGateway) CreateOrder(_ context.Context, _ decimal.Decimal, _, receipt string) (string, error) {
	if g.createErr != nil {
		return "", g.createErr
	}
	id := "gw_" + receipt
	g.createdOrders = append(g.createdOrders, id)
	return id, nil
}

func (g *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == g.validSignature
}

func (g *fakeGateway) Refund(_ context.Context, paymentID string, _ decimal.Decimal) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, paymentID)
	return nil
}

type fixture struct {
	svc      *Service
	products *catalogmemory.Repository
	cart     *catalogmemory.CartRepository
	gateway  *fakeGateway
	product  *catalogdomain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := catalogmemory.NewRepository()
	cart := catalogmemory.NewCartRepository()
	repo := memory.NewRepository(products, cart)
	gateway := &fakeGateway{validSignature: "good-signature"}

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	seq := 0
	svc := NewService(repo, products, cart, gateway,
		WithClock(func() time.Time { return now }),
		WithOrderNumberSource(func() string {
			seq++
			return string(rune('A' + seq - 1))
		}),
	)

	product, err := catalogdomain.NewProduct("Dog Food 5kg", decimal.RequireFromString("200"), 10)
	require.NoError(t, err)
	require.NoError(t, product.SetDiscount(decimal.RequireFromString("10")))
	saved, err := products.SaveProduct(context.Background(), product)
	require.NoError(t, err)

	return &fixture{svc: svc, products: products, cart: cart, gateway: gateway, product: saved.Entity}
}

func (f *fixture) fillCart(t *testing.T, quantity int) {
	t.Helper()
	line, err := catalogdomain.NewCartLine(buyerID, f.product, quantity)
	require.NoError(t, err)
	_, err = f.cart.SaveLine(context.Background(), line)
	require.NoError(t, err)
}

func checkoutInput() ports.CheckoutInput {
	return ports.CheckoutInput{
		UserID:          buyerID,
		ShippingAddress: "12 Harbour Lane",
	}
}

func TestCheckoutCODPricesAndFinalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutCOD(ctx, checkoutInput())
	require.NoError(t, err)
	order := placed.Entity

	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, domain.PaymentPending, order.PaymentStatus)
	require.Equal(t, domain.MethodCOD, order.PaymentMethod)
	require.True(t, order.Subtotal.Equal(decimal.RequireFromString("360.00")), order.Subtotal.String())
	require.True(t, order.Tax.Equal(decimal.RequireFromString("64.80")), order.Tax.String())
	require.True(t, order.Shipping.Equal(decimal.NewFromInt(50)), order.Shipping.String())
	require.True(t, order.Total.Equal(decimal.RequireFromString("474.80")), order.Total.String())
	require.Len(t, order.Items, 1)
	require.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("180.00")))

	// stock decremented, cart cleared
	productFound, err := f.products.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 8, productFound.Entity.Stock)
	count, err := f.cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CheckoutCOD(context.Background(), checkoutInput())
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestCheckoutAbortsOnInsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 8)

	// stock drops after the cart was filled
	f.product.Stock = 5
	_, err := f.products.SaveProduct(ctx, f.product)
	require.NoError(t, err)

	_, err = f.svc.CheckoutCOD(ctx, checkoutInput())
	require.True(t, apperr.IsKind(err, apperr.KindConflict))

	// no partial effects
	productFound, err := f.products.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, productFound.Entity.Stock)
	count, err := f.cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	page, err := f.svc.ListByUser(ctx, buyerID, pagination.Request{})
	require.NoError(t, err)
	require.Empty(t, page.Items)
}

func TestCheckoutGatewayDefersStockAndCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutGateway(ctx, checkoutInput())
	require.NoError(t, err)
	order := placed.Entity
	require.Equal(t, domain.MethodGateway, order.PaymentMethod)
	require.NotEmpty(t, order.GatewayOrderID)

	// stock and cart untouched until payment confirms
	productFound, err := f.products.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 10, productFound.Entity.Stock)
	count, err := f.cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestCheckoutGatewayFailureLeavesPendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)
	f.gateway.createErr = errors.New("gateway down")

	_, err := f.svc.CheckoutGateway(ctx, checkoutInput())
	require.True(t, apperr.IsKind(err, apperr.KindExternal))

	// the order exists pending and unpaid for reconciliation
	page, err := f.svc.ListByUser(ctx, buyerID, pagination.Request{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, domain.StatusPending, page.Items[0].Entity.Status)
	require.Equal(t, domain.PaymentPending, page.Items[0].Entity.PaymentStatus)
	count, err := f.cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestConfirmPaymentFinalizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutGateway(ctx, checkoutInput())
	require.NoError(t, err)

	confirmed, err := f.svc.ConfirmPayment(ctx, ports.ConfirmPaymentInput{
		GatewayOrderID:   placed.Entity.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "good-signature",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, confirmed.Entity.Status)
	require.Equal(t, domain.PaymentPaid, confirmed.Entity.PaymentStatus)

	productFound, err := f.products.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	require.Equal(t, 8, productFound.Entity.Stock)
	count, err := f.cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestConfirmPaymentRejectsBadSignature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutGateway(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, ports.ConfirmPaymentInput{
		GatewayOrderID:   placed.Entity.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "forged",
	})
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestCancelPendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutCOD(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, placed.Entity.ID, buyerID+1)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	cancelled, err := f.svc.Cancel(ctx, placed.Entity.ID, buyerID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Entity.Status)
	require.Empty(t, f.gateway.refunds)

	_, err = f.svc.Cancel(ctx, placed.Entity.ID, buyerID)
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestCancelPaidOrderRefunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutGateway(ctx, checkoutInput())
	require.NoError(t, err)
	confirmed, err := f.svc.ConfirmPayment(ctx, ports.ConfirmPaymentInput{
		GatewayOrderID:   placed.Entity.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "good-signature",
	})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, confirmed.Entity.ID, buyerID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Entity.Status)
	require.Equal(t, domain.PaymentRefunded, cancelled.Entity.PaymentStatus)
	require.Equal(t, []string{"pay_1"}, f.gateway.refunds)
}

func TestMarkDeliveredFlipsCODPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutCOD(ctx, checkoutInput())
	require.NoError(t, err)

	delivered, err := f.svc.MarkDelivered(ctx, placed.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, delivered.Entity.Status)
	require.Equal(t, domain.PaymentPaid, delivered.Entity.PaymentStatus)
	require.NotNil(t, delivered.Entity.DeliveredAt)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutCOD(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, placed.Entity.ID, "TELEPORTED")
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestGetByIDOwnerGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fillCart(t, 2)

	placed, err := f.svc.CheckoutCOD(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, placed.Entity.ID, buyerID+1)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	found, err := f.svc.GetByID(ctx, placed.Entity.ID, buyerID)
	require.NoError(t, err)
	require.Equal(t, placed.Entity.ID, found.Entity.ID)
}
