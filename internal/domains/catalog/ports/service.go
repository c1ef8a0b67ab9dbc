package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

// CreateProductInput carries the fields a new product accepts.
type CreateProductInput struct {
	ActorID         int64
	Name            string
	Description     string
	CategoryID      *int64
	Brand           string
	SKU             string
	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	Stock           int
	Tags            []string
	ImageURLs       []string
	Featured        bool
}

// UpdateProductInput mutates an existing product; nil fields are left
// untouched.
type UpdateProductInput struct {
	ID              int64
	Name            *string
	Description     *string
	CategoryID      *int64
	Brand           *string
	SKU             *string
	Price           *decimal.Decimal
	DiscountPercent *decimal.Decimal
	Stock           *int
	Tags            *[]string
	ImageURLs       *[]string
	Active          *bool
	Featured        *bool
}

// ProductService enumerates the product catalog use cases. Write operations
// are admin-only; the transport layer enforces the role.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductProjection, error)
	Update(ctx context.Context, input UpdateProductInput) (*ProductProjection, error)
	GetByID(ctx context.Context, id int64) (*ProductProjection, error)
	Delete(ctx context.Context, id int64) error
	ListActive(ctx context.Context, page pagination.Request) (pagination.Page[*ProductProjection], error)
	List(ctx context.Context, page pagination.Request) (pagination.Page[*ProductProjection], error)

	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// CartEntry pairs a cart line with the product it references.
type CartEntry struct {
	Line    *domain.CartLine
	Product *domain.Product
}

// CartSummary is the priced view of a user's cart. It uses the same per-line
// arithmetic as checkout so the numbers never disagree.
type CartSummary struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
}

// CartService enumerates the shopping-cart use cases.
type CartService interface {
	Add(ctx context.Context, userID, productID int64, quantity int) (*CartEntry, error)
	UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) (*CartEntry, error)
	Remove(ctx context.Context, userID, lineID int64) error
	Clear(ctx context.Context, userID int64) error
	Count(ctx context.Context, userID int64) (int, error)
	Items(ctx context.Context, userID int64) ([]*CartEntry, error)
	Summary(ctx context.Context, userID int64) (*CartSummary, error)
}
