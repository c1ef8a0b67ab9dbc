package domain

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyCart       = errors.New("cart is empty")
)

// CartLine pairs a product with a quantity for one user. Quantity never
// exceeds the product's stock at the time of mutation; checkout re-validates
// against live stock.
type CartLine struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
}

// NewCartLine validates the invariants against the product and builds a line.
func NewCartLine(userID int64, product *Product, quantity int) (*CartLine, error) {
	line := &CartLine{UserID: userID, ProductID: product.ID}
	if err := line.SetQuantity(product, quantity); err != nil {
		return nil, err
	}
	return line, nil
}

// SetQuantity replaces the quantity, guarding against the product's stock.
func (l *CartLine) SetQuantity(product *Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !product.Active {
		return ErrInactiveProduct
	}
	if quantity > product.Stock {
		return ErrInsufficientStock
	}
	l.Quantity = quantity
	return nil
}

// Merge adds the given quantity onto the line, guarding against stock.
func (l *CartLine) Merge(product *Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return l.SetQuantity(product, l.Quantity+quantity)
}
