package ports

import (
	"context"
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var ErrNotFound = errors.New("order not found")

// OrderProjection is the materialized view returned by repositories. Items
// are always loaded; no lazy references cross this boundary.
type OrderProjection = projection.Projection[*domain.Order]

// Repository persists orders. The multi-row checkout steps go through
// Checkout and Finalize so the order, its items, the stock decrements, and
// the cart wipe commit as one atomic unit.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*OrderProjection, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*OrderProjection, error)
	Save(ctx context.Context, order *domain.Order) (*OrderProjection, error)
	ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]*OrderProjection, int64, error)
	ListAll(ctx context.Context, page pagination.Request) ([]*OrderProjection, int64, error)

	// Checkout persists a new order with its items. When finalize is true it
	// also decrements each product's stock and clears the user's cart in the
	// same transaction; insufficient stock aborts the whole operation.
	Checkout(ctx context.Context, order *domain.Order, finalize bool) (*OrderProjection, error)

	// Finalize saves the order and performs the deferred stock decrement and
	// cart wipe in one transaction. Used when a gateway payment confirms.
	Finalize(ctx context.Context, order *domain.Order) (*OrderProjection, error)
}
