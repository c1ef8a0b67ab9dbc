package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product and category store used for development
// and tests.
type Repository struct {
	mu             sync.RWMutex
	products       map[int64]*storedProduct
	categories     map[int64]*domain.Category
	nextProductID  int64
	nextCategoryID int64
	now            func() time.Time
}

type storedProduct struct {
	product  *domain.Product
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		products:   map[int64]*storedProduct{},
		categories: map[int64]*domain.Category{},
		now:        time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// SaveProduct inserts or replaces a product while maintaining metadata.
func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		r.nextProductID++
		product.ID = r.nextProductID
	} else if product.ID > r.nextProductID {
		r.nextProductID = product.ID
	}

	entry, ok := r.products[product.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}

	stored := &storedProduct{product: cloneProduct(product), metadata: metadata}
	r.products[product.ID] = stored
	return productCopy(stored), nil
}

// GetProduct fetches a product if present.
func (r *Repository) GetProduct(_ context.Context, id int64) (*ports.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return productCopy(entry), nil
}

// DeleteProduct removes a product.
func (r *Repository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// ListActive returns one page of active products plus the total count.
func (r *Repository) ListActive(ctx context.Context, page pagination.Request) ([]*ports.ProductProjection, int64, error) {
	return r.page(page, func(p *domain.Product) bool { return p.Active })
}

// ListProducts returns one page of all products plus the total count.
func (r *Repository) ListProducts(ctx context.Context, page pagination.Request) ([]*ports.ProductProjection, int64, error) {
	return r.page(page, func(*domain.Product) bool { return true })
}

// SaveCategory inserts or replaces a category.
func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("cannot save nil category")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == 0 {
		r.nextCategoryID++
		category.ID = r.nextCategoryID
	}
	stored := *category
	r.categories[category.ID] = &stored
	copied := stored
	return &copied, nil
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		copied := *c
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Repository) page(page pagination.Request, keep func(*domain.Product) bool) ([]*ports.ProductProjection, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*ports.ProductProjection
	for _, entry := range r.products {
		if keep(entry.product) {
			all = append(all, productCopy(entry))
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

func productCopy(entry *storedProduct) *ports.ProductProjection {
	return &ports.ProductProjection{
		Entity:   cloneProduct(entry.product),
		Metadata: entry.metadata,
	}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	if len(p.Tags) > 0 {
		clone.Tags = append([]string{}, p.Tags...)
	}
	if len(p.ImageURLs) > 0 {
		clone.ImageURLs = append([]string{}, p.ImageURLs...)
	}
	if p.CategoryID != nil {
		category := *p.CategoryID
		clone.CategoryID = &category
	}
	return &clone
}
