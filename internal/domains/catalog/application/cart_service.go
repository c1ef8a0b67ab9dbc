package application

import (
	"context"
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	ordersdomain "github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

var _ ports.CartService = (*CartService)(nil)

// CartService manages per-user cart lines. Quantities are stock-guarded on
// every mutation; the summary reuses the checkout pricing arithmetic.
type CartService struct {
	products ports.Repository
	cart     ports.CartRepository
}

func NewCartService(products ports.Repository, cart ports.CartRepository) *CartService {
	return &CartService{products: products, cart: cart}
}

// Add puts a product into the cart, merging quantities when a line for the
// product already exists.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (*ports.CartEntry, error) {
	found, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, mapError(err)
	}
	product := found.Entity

	existing, err := s.cart.FindLine(ctx, userID, productID)
	if err != nil && !errors.Is(err, ports.ErrLineNotFound) {
		return nil, mapError(err)
	}

	var line *domain.CartLine
	if existing != nil {
		if err := existing.Merge(product, quantity); err != nil {
			return nil, mapError(err)
		}
		line = existing
	} else {
		line, err = domain.NewCartLine(userID, product, quantity)
		if err != nil {
			return nil, mapError(err)
		}
	}

	saved, err := s.cart.SaveLine(ctx, line)
	if err != nil {
		return nil, mapError(err)
	}
	return &ports.CartEntry{Line: saved, Product: product}, nil
}

// UpdateQuantity replaces a line's quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) (*ports.CartEntry, error) {
	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}
	found, err := s.products.GetProduct(ctx, line.ProductID)
	if err != nil {
		return nil, mapError(err)
	}
	product := found.Entity
	if err := line.SetQuantity(product, quantity); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.cart.SaveLine(ctx, line)
	if err != nil {
		return nil, mapError(err)
	}
	return &ports.CartEntry{Line: saved, Product: product}, nil
}

// Remove deletes one line from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID, lineID int64) error {
	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return err
	}
	return mapError(s.cart.DeleteLine(ctx, line.ID))
}

// Clear removes every line from the user's cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return mapError(s.cart.ClearUser(ctx, userID))
}

// Count returns the number of lines in the user's cart.
func (s *CartService) Count(ctx context.Context, userID int64) (int, error) {
	count, err := s.cart.CountLines(ctx, userID)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// Items returns the cart lines joined with their products.
func (s *CartService) Items(ctx context.Context, userID int64) ([]*ports.CartEntry, error) {
	lines, err := s.cart.ListLines(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	entries := make([]*ports.CartEntry, 0, len(lines))
	for _, line := range lines {
		found, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, mapError(err)
		}
		entries = append(entries, &ports.CartEntry{Line: line, Product: found.Entity})
	}
	return entries, nil
}

// Summary prices the cart with the checkout arithmetic.
func (s *CartService) Summary(ctx context.Context, userID int64) (*ports.CartSummary, error) {
	entries, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]ordersdomain.PricingLine, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, ordersdomain.PricingLine{
			ProductID:       entry.Product.ID,
			ProductName:     entry.Product.Name,
			UnitPrice:       entry.Product.Price,
			DiscountPercent: entry.Product.DiscountPercent,
			Quantity:        entry.Line.Quantity,
		})
	}
	quote := ordersdomain.Price(lines)
	return &ports.CartSummary{
		ItemCount: quote.ItemCount,
		Subtotal:  quote.Subtotal,
		Discount:  quote.Discount,
		Tax:       quote.Tax,
		Shipping:  quote.Shipping,
		Total:     quote.Total,
	}, nil
}

func (s *CartService) ownedLine(ctx context.Context, userID, lineID int64) (*domain.CartLine, error) {
	line, err := s.cart.GetLine(ctx, lineID)
	if err != nil {
		return nil, mapError(err)
	}
	if line.UserID != userID {
		return nil, apperr.Unauthorized("cart item belongs to another user")
	}
	return line, nil
}
