package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
)

// CreateProduct captures the inbound payload for a new product.
type CreateProduct struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description,omitempty"`
	CategoryID      *int64          `json:"categoryId,omitempty"`
	Brand           string          `json:"brand,omitempty"`
	SKU             string          `json:"sku,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Stock           int             `json:"stock"`
	Tags            []string        `json:"tags,omitempty"`
	ImageURLs       []string        `json:"imageUrls,omitempty"`
	Featured        bool            `json:"featured,omitempty"`
}

// UpdateProduct captures partial updates while preserving field presence.
type UpdateProduct struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	CategoryID      *int64           `json:"categoryId,omitempty"`
	Brand           *string          `json:"brand,omitempty"`
	SKU             *string          `json:"sku,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	Stock           *int             `json:"stock,omitempty"`
	Tags            *[]string        `json:"tags,omitempty"`
	ImageURLs       *[]string        `json:"imageUrls,omitempty"`
	Active          *bool            `json:"active,omitempty"`
	Featured        *bool            `json:"featured,omitempty"`
}

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	CategoryID      *int64          `json:"categoryId,omitempty"`
	Brand           string          `json:"brand,omitempty"`
	SKU             string          `json:"sku,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Stock           int             `json:"stock"`
	Tags            []string        `json:"tags,omitempty"`
	ImageURLs       []string        `json:"imageUrls,omitempty"`
	Active          bool            `json:"active"`
	Featured        bool            `json:"featured"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Category is the HTTP representation of a product category.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategory captures the inbound payload for a new category.
type CreateCategory struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// CartLinePayload captures add-to-cart and quantity updates.
type CartLinePayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CartEntry is the HTTP representation of one cart line with its product.
type CartEntry struct {
	ID       int64    `json:"id"`
	Quantity int      `json:"quantity"`
	Product  *Product `json:"product"`
}

// CartSummary is the HTTP representation of the priced cart.
type CartSummary struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// ToCreateInput maps the transport payload into a service input.
func (c CreateProduct) ToCreateInput(actorID int64) ports.CreateProductInput {
	return ports.CreateProductInput{
		ActorID:         actorID,
		Name:            c.Name,
		Description:     c.Description,
		CategoryID:      c.CategoryID,
		Brand:           c.Brand,
		SKU:             c.SKU,
		Price:           c.Price,
		DiscountPercent: c.DiscountPercent,
		Stock:           c.Stock,
		Tags:            c.Tags,
		ImageURLs:       c.ImageURLs,
		Featured:        c.Featured,
	}
}

// ToUpdateInput maps the transport payload into a service input.
func (u UpdateProduct) ToUpdateInput(productID int64) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		ID:              productID,
		Name:            u.Name,
		Description:     u.Description,
		CategoryID:      u.CategoryID,
		Brand:           u.Brand,
		SKU:             u.SKU,
		Price:           u.Price,
		DiscountPercent: u.DiscountPercent,
		Stock:           u.Stock,
		Tags:            u.Tags,
		ImageURLs:       u.ImageURLs,
		Active:          u.Active,
		Featured:        u.Featured,
	}
}

// FromProjection maps a projection into the transport representation.
func FromProjection(p *ports.ProductProjection) *Product {
	if p == nil || p.Entity == nil {
		return nil
	}
	return fromDomain(p.Entity, p.Metadata.CreatedAt, p.Metadata.UpdatedAt)
}

// FromProjections maps a slice of projections.
func FromProjections(list []*ports.ProductProjection) []*Product {
	out := make([]*Product, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

// FromCategory maps a category into the transport representation.
func FromCategory(c *domain.Category) *Category {
	if c == nil {
		return nil
	}
	return &Category{ID: c.ID, Name: c.Name, Description: c.Description}
}

// FromCategories maps a slice of categories.
func FromCategories(list []*domain.Category) []*Category {
	out := make([]*Category, 0, len(list))
	for _, c := range list {
		out = append(out, FromCategory(c))
	}
	return out
}

// FromCartEntry maps a cart entry into the transport representation.
func FromCartEntry(e *ports.CartEntry) *CartEntry {
	if e == nil || e.Line == nil {
		return nil
	}
	out := &CartEntry{ID: e.Line.ID, Quantity: e.Line.Quantity}
	if e.Product != nil {
		out.Product = fromDomain(e.Product, time.Time{}, time.Time{})
	}
	return out
}

// FromCartEntries maps a slice of cart entries.
func FromCartEntries(list []*ports.CartEntry) []*CartEntry {
	out := make([]*CartEntry, 0, len(list))
	for _, e := range list {
		out = append(out, FromCartEntry(e))
	}
	return out
}

// FromCartSummary maps the priced cart view.
func FromCartSummary(s *ports.CartSummary) *CartSummary {
	if s == nil {
		return nil
	}
	return &CartSummary{
		ItemCount: s.ItemCount,
		Subtotal:  s.Subtotal,
		Discount:  s.Discount,
		Tax:       s.Tax,
		Shipping:  s.Shipping,
		Total:     s.Total,
	}
}

func fromDomain(p *domain.Product, createdAt, updatedAt time.Time) *Product {
	return &Product{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Brand:           p.Brand,
		SKU:             p.SKU,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		Stock:           p.Stock,
		Tags:            p.Tags,
		ImageURLs:       p.ImageURLs,
		Active:          p.Active,
		Featured:        p.Featured,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}
