package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
)

var _ ports.CartRepository = (*CartRepository)(nil)

// CartRepository is an in-memory cart-line store used for development and
// tests.
type CartRepository struct {
	mu     sync.RWMutex
	lines  map[int64]*domain.CartLine
	nextID int64
}

// NewCartRepository constructs an empty in-memory store.
func NewCartRepository() *CartRepository {
	return &CartRepository{lines: map[int64]*domain.CartLine{}}
}

// SaveLine inserts or replaces a cart line. New lines get a generated
// identifier.
func (r *CartRepository) SaveLine(_ context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	if line == nil {
		return nil, errors.New("cannot save nil cart line")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if line.ID == 0 {
		r.nextID++
		line.ID = r.nextID
	}
	stored := *line
	r.lines[line.ID] = &stored
	copied := stored
	return &copied, nil
}

// GetLine fetches a cart line if present.
func (r *CartRepository) GetLine(_ context.Context, id int64) (*domain.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	line, ok := r.lines[id]
	if !ok {
		return nil, ports.ErrLineNotFound
	}
	copied := *line
	return &copied, nil
}

// FindLine returns the line for a (user, product) pair.
func (r *CartRepository) FindLine(_ context.Context, userID, productID int64) (*domain.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, line := range r.lines {
		if line.UserID == userID && line.ProductID == productID {
			copied := *line
			return &copied, nil
		}
	}
	return nil, ports.ErrLineNotFound
}

// ListLines returns every line in the user's cart.
func (r *CartRepository) ListLines(_ context.Context, userID int64) ([]*domain.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.CartLine
	for _, line := range r.lines {
		if line.UserID == userID {
			copied := *line
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// DeleteLine removes a cart line.
func (r *CartRepository) DeleteLine(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[id]; !ok {
		return ports.ErrLineNotFound
	}
	delete(r.lines, id)
	return nil
}

// ClearUser removes every line in the user's cart.
func (r *CartRepository) ClearUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, line := range r.lines {
		if line.UserID == userID {
			delete(r.lines, id)
		}
	}
	return nil
}

// CountLines returns the number of lines in the user's cart.
func (r *CartRepository) CountLines(_ context.Context, userID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, line := range r.lines {
		if line.UserID == userID {
			count++
		}
	}
	return count, nil
}
