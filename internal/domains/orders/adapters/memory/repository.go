package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	catalogdomain "github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store used for development and tests.
// Checkout and Finalize write stock and cart through the injected catalog
// repositories; stock is validated up front so a failure leaves no partial
// state.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*storedOrder
	nextID     int64
	nextItemID int64
	now        func() time.Time
	products   catalogports.Repository
	cart       catalogports.CartRepository
}

type storedOrder struct {
	order    *domain.Order
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store backed by the given
// catalog repositories.
func NewRepository(products catalogports.Repository, cart catalogports.CartRepository) *Repository {
	return &Repository{
		orders:   map[int64]*storedOrder{},
		now:      time.Now,
		products: products,
		cart:     cart,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// GetByID fetches an order if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*ports.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// GetByGatewayOrderID fetches the order holding the gateway reference.
func (r *Repository) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*ports.OrderProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.orders {
		if entry.order.GatewayOrderID == gatewayOrderID && gatewayOrderID != "" {
			return projectionCopy(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

// Save replaces an existing order while maintaining metadata.
func (r *Repository) Save(_ context.Context, order *domain.Order) (*ports.OrderProjection, error) {
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(order)
}

// ListByUser returns one page of the user's orders plus the total count.
func (r *Repository) ListByUser(_ context.Context, userID int64, page pagination.Request) ([]*ports.OrderProjection, int64, error) {
	return r.page(page, func(o *domain.Order) bool { return o.UserID == userID })
}

// ListAll returns one page of all orders plus the total count.
func (r *Repository) ListAll(_ context.Context, page pagination.Request) ([]*ports.OrderProjection, int64, error) {
	return r.page(page, func(*domain.Order) bool { return true })
}

// Checkout persists a new order. When finalize is true the stock decrement
// and cart wipe run first so any stock failure aborts before the order is
// recorded.
func (r *Repository) Checkout(ctx context.Context, order *domain.Order, finalize bool) (*ports.OrderProjection, error) {
	if order == nil {
		return nil, errors.New("cannot checkout nil order")
	}
	if finalize {
		if err := r.applySideEffects(ctx, order); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	for i := range order.Items {
		r.nextItemID++
		order.Items[i].ID = r.nextItemID
		order.Items[i].OrderID = order.ID
	}
	timestamp := r.now()
	stored := &storedOrder{
		order:    cloneOrder(order),
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.orders[order.ID] = stored
	return projectionCopy(stored), nil
}

// Finalize saves the order and applies the deferred stock decrement and cart
// wipe.
func (r *Repository) Finalize(ctx context.Context, order *domain.Order) (*ports.OrderProjection, error) {
	if order == nil {
		return nil, errors.New("cannot finalize nil order")
	}
	if err := r.applySideEffects(ctx, order); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(order)
}

func (r *Repository) applySideEffects(ctx context.Context, order *domain.Order) error {
	if r.products == nil || r.cart == nil {
		return errors.New("memory repository not wired to catalog repositories")
	}
	// Validate everything before mutating so a failure leaves no partial state.
	for _, item := range order.Items {
		found, err := r.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !found.Entity.HasStock(item.Quantity) {
			return catalogdomain.ErrInsufficientStock
		}
	}
	for _, item := range order.Items {
		found, err := r.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		product := found.Entity
		if err := product.Reserve(item.Quantity); err != nil {
			return err
		}
		if _, err := r.products.SaveProduct(ctx, product); err != nil {
			return err
		}
	}
	return r.cart.ClearUser(ctx, order.UserID)
}

func (r *Repository) saveLocked(order *domain.Order) (*ports.OrderProjection, error) {
	entry, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	metadata := projection.Metadata{CreatedAt: entry.metadata.CreatedAt, UpdatedAt: r.now()}
	stored := &storedOrder{order: cloneOrder(order), metadata: metadata}
	r.orders[order.ID] = stored
	return projectionCopy(stored), nil
}

func (r *Repository) page(page pagination.Request, keep func(*domain.Order) bool) ([]*ports.OrderProjection, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*ports.OrderProjection
	for _, entry := range r.orders {
		if keep(entry.order) {
			all = append(all, projectionCopy(entry))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Metadata.CreatedAt.Equal(all[j].Metadata.CreatedAt) {
			return all[i].Entity.ID > all[j].Entity.ID
		}
		return all[i].Metadata.CreatedAt.After(all[j].Metadata.CreatedAt)
	})

	total := int64(len(all))
	offset := page.Offset()
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func projectionCopy(entry *storedOrder) *ports.OrderProjection {
	return &ports.OrderProjection{
		Entity:   cloneOrder(entry.order),
		Metadata: entry.metadata,
	}
}

func cloneOrder(o *domain.Order) *domain.Order {
	if o == nil {
		return nil
	}
	clone := *o
	if len(o.Items) > 0 {
		clone.Items = append([]domain.OrderItem{}, o.Items...)
	}
	if o.EstimatedDelivery != nil {
		estimated := *o.EstimatedDelivery
		clone.EstimatedDelivery = &estimated
	}
	if o.DeliveredAt != nil {
		delivered := *o.DeliveredAt
		clone.DeliveredAt = &delivered
	}
	return &clone
}
