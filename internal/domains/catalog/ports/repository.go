package ports

import (
	"context"
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrLineNotFound = errors.New("cart item not found")
)

// ProductProjection is the materialized view returned by repositories.
type ProductProjection = projection.Projection[*domain.Product]

// Repository persists products and categories.
type Repository interface {
	SaveProduct(ctx context.Context, product *domain.Product) (*ProductProjection, error)
	GetProduct(ctx context.Context, id int64) (*ProductProjection, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListActive(ctx context.Context, page pagination.Request) ([]*ProductProjection, int64, error)
	ListProducts(ctx context.Context, page pagination.Request) ([]*ProductProjection, int64, error)

	SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// CartRepository persists per-user cart lines.
type CartRepository interface {
	SaveLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	GetLine(ctx context.Context, id int64) (*domain.CartLine, error)
	FindLine(ctx context.Context, userID, productID int64) (*domain.CartLine, error)
	ListLines(ctx context.Context, userID int64) ([]*domain.CartLine, error)
	DeleteLine(ctx context.Context, id int64) error
	ClearUser(ctx context.Context, userID int64) error
	CountLines(ctx context.Context, userID int64) (int, error)
}
