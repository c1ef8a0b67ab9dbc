//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	orderspostgres "github.com/pethaven/pethaven-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/platform/migrations"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

const buyerID = int64(42)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("pethaven_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

// seedCheckout creates a product with the given stock, puts quantity of it in
// the buyer's cart, and returns the product ID plus a priced pending order.
func seedCheckout(t *testing.T, db *gorm.DB, stock, quantity int, method string) (int64, *domain.Order) {
	t.Helper()
	ctx := context.Background()

	products := catalogpostgres.NewRepository(db)
	cart := catalogpostgres.NewCartRepository(db)

	product, err := catalogdomain.NewProduct("Dog Food 5kg", decimal.NewFromInt(200), stock)
	require.NoError(t, err)
	require.NoError(t, product.SetDiscount(decimal.NewFromInt(10)))
	saved, err := products.SaveProduct(ctx, product)
	require.NoError(t, err)

	_, err = cart.SaveLine(ctx, &catalogdomain.CartLine{
		UserID:    buyerID,
		ProductID: saved.Entity.ID,
		Quantity:  quantity,
	})
	require.NoError(t, err)

	quote := domain.Price([]domain.PricingLine{{
		ProductID:       saved.Entity.ID,
		ProductName:     saved.Entity.Name,
		UnitPrice:       saved.Entity.Price,
		DiscountPercent: saved.Entity.DiscountPercent,
		Quantity:        quantity,
	}})
	order, err := domain.NewOrder("ORD-IT-1", buyerID, method, quote, "12 Hill Road, Pune", "", "")
	require.NoError(t, err)
	return saved.Entity.ID, order
}

func TestPostgresRepository_CheckoutFinalizesAtomically(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	productID, order := seedCheckout(t, db, 10, 2, domain.MethodCOD)

	repo := orderspostgres.NewRepository(db)
	projection, err := repo.Checkout(ctx, order, true)
	require.NoError(t, err)
	assert.NotZero(t, projection.Entity.ID)
	assert.True(t, projection.Entity.Total.Equal(decimal.RequireFromString("474.80")), projection.Entity.Total.String())
	require.Len(t, projection.Entity.Items, 1)
	assert.Equal(t, productID, projection.Entity.Items[0].ProductID)

	products := catalogpostgres.NewRepository(db)
	after, err := products.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Entity.Stock)

	cart := catalogpostgres.NewCartRepository(db)
	count, err := cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostgresRepository_CheckoutAbortsOnInsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	productID, order := seedCheckout(t, db, 1, 1, domain.MethodCOD)

	// Inflate the order beyond live stock to force the conditional UPDATE to
	// miss; the order row must roll back with it.
	order.Items[0].Quantity = 3

	repo := orderspostgres.NewRepository(db)
	_, err := repo.Checkout(ctx, order, true)
	require.ErrorIs(t, err, catalogdomain.ErrInsufficientStock)

	_, total, err := repo.ListAll(ctx, pagination.Request{Page: 0, Size: 20})
	require.NoError(t, err)
	assert.Zero(t, total)

	products := catalogpostgres.NewRepository(db)
	after, err := products.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Entity.Stock)
}

func TestPostgresRepository_DeferredFinalizeForGatewayOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	productID, order := seedCheckout(t, db, 10, 2, domain.MethodGateway)
	order.AttachGatewayOrder("order_rzp_1")

	repo := orderspostgres.NewRepository(db)
	_, err := repo.Checkout(ctx, order, false)
	require.NoError(t, err)

	// Side effects are deferred until the payment confirms.
	products := catalogpostgres.NewRepository(db)
	before, err := products.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, before.Entity.Stock)

	pending, err := repo.GetByGatewayOrderID(ctx, "order_rzp_1")
	require.NoError(t, err)
	require.NoError(t, pending.Entity.ConfirmPayment("pay_rzp_1"))

	finalized, err := repo.Finalize(ctx, pending.Entity)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, finalized.Entity.Status)
	assert.Equal(t, domain.PaymentPaid, finalized.Entity.PaymentStatus)

	after, err := products.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Entity.Stock)

	cart := catalogpostgres.NewCartRepository(db)
	count, err := cart.CountLines(ctx, buyerID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
