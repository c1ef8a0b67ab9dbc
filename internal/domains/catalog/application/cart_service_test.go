package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/memory"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

const cartUserID = int64(7)

func newCartFixture(t *testing.T) (*CartService, *memory.Repository, *domain.Product) {
	t.Helper()
	products := memory.NewRepository()
	cart := memory.NewCartRepository()
	svc := NewCartService(products, cart)

	product, err := domain.NewProduct("Dog Food 5kg", decimal.RequireFromString("200"), 10)
	require.NoError(t, err)
	require.NoError(t, product.SetDiscount(decimal.RequireFromString("10")))
	saved, err := products.SaveProduct(context.Background(), product)
	require.NoError(t, err)
	return svc, products, saved.Entity
}

func TestAddToCart(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, cartUserID, product.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, entry.Line.Quantity)
	require.Equal(t, product.ID, entry.Line.ProductID)

	count, err := svc.Count(ctx, cartUserID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestAddMergesQuantities(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, cartUserID, product.ID, 2)
	require.NoError(t, err)
	entry, err := svc.Add(ctx, cartUserID, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 5, entry.Line.Quantity)

	count, err := svc.Count(ctx, cartUserID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestAddGuardsStock(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, cartUserID, product.ID, 11)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.Add(ctx, cartUserID, product.ID, 8)
	require.NoError(t, err)
	_, err = svc.Add(ctx, cartUserID, product.ID, 3)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAddRejectsInactiveProduct(t *testing.T) {
	svc, products, product := newCartFixture(t)
	ctx := context.Background()

	product.Active = false
	_, err := products.SaveProduct(ctx, product)
	require.NoError(t, err)

	_, err = svc.Add(ctx, cartUserID, product.ID, 1)
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestUpdateQuantityOwnerGuard(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, cartUserID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, cartUserID+1, entry.Line.ID, 1)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	updated, err := svc.UpdateQuantity(ctx, cartUserID, entry.Line.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Line.Quantity)
}

func TestRemoveAndClear(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, cartUserID, product.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, cartUserID, entry.Line.ID))

	err = svc.Remove(ctx, cartUserID, entry.Line.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.Add(ctx, cartUserID, product.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, cartUserID))
	count, err := svc.Count(ctx, cartUserID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSummaryMatchesCheckoutArithmetic(t *testing.T) {
	svc, _, product := newCartFixture(t)
	ctx := context.Background()

	// price 200, 10% discount, qty 2: subtotal 360.00, tax 64.80, shipping 50
	_, err := svc.Add(ctx, cartUserID, product.ID, 2)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, cartUserID)
	require.NoError(t, err)
	require.Equal(t, 2, summary.ItemCount)
	require.True(t, summary.Subtotal.Equal(decimal.RequireFromString("360.00")), summary.Subtotal.String())
	require.True(t, summary.Discount.Equal(decimal.RequireFromString("40.00")), summary.Discount.String())
	require.True(t, summary.Tax.Equal(decimal.RequireFromString("64.80")), summary.Tax.String())
	require.True(t, summary.Shipping.Equal(decimal.NewFromInt(50)), summary.Shipping.String())
	require.True(t, summary.Total.Equal(decimal.RequireFromString("474.80")), summary.Total.String())
}
