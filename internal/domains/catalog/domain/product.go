package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrNegativePrice     = errors.New("product price must not be negative")
	ErrInvalidDiscount   = errors.New("discount percent must be between 0 and 100")
	ErrNegativeStock     = errors.New("stock quantity must not be negative")
	ErrInactiveProduct   = errors.New("product is not available")
	ErrInsufficientStock = errors.New("insufficient stock")
)

var oneHundred = decimal.NewFromInt(100)

// Category groups products for browsing.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Product is a marketplace item. Price and discount are fixed-point decimals;
// stock moves only through Reserve and Restock.
type Product struct {
	ID          int64
	Name        string
	Description string
	CategoryID  *int64
	Brand       string
	SKU         string

	Price           decimal.Decimal
	DiscountPercent decimal.Decimal
	Stock           int
	MinStockLevel   int

	Tags      []string
	ImageURLs []string
	Active    bool
	Featured  bool

	CreatedByID int64
}

// NewProduct validates the invariants and builds an active product.
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	p := &Product{Active: true, MinStockLevel: 5}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetStock(stock); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetPrice replaces the unit price.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetDiscount replaces the discount percent.
func (p *Product) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return ErrInvalidDiscount
	}
	p.DiscountPercent = percent
	return nil
}

// SetStock replaces the stock quantity.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

// HasStock reports whether the product can satisfy the quantity.
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// Reserve decrements stock for a purchase, never below zero.
func (p *Product) Reserve(quantity int) error {
	if !p.HasStock(quantity) {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

// Restock increments stock.
func (p *Product) Restock(quantity int) {
	if quantity > 0 {
		p.Stock += quantity
	}
}

// LowStock reports whether stock fell to the reorder threshold.
func (p *Product) LowStock() bool { return p.Stock <= p.MinStockLevel }
