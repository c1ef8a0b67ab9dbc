package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products and categories in PostgreSQL using GORM-mapped
// columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle; schema setup lives in platform/migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID          int64  `gorm:"primaryKey;column:id;autoIncrement"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description;type:text"`
	CategoryID  *int64 `gorm:"column:category_id;index"`
	Brand       string `gorm:"column:brand"`
	SKU         string `gorm:"column:sku;uniqueIndex"`

	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)"`
	Stock           int             `gorm:"column:stock"`
	MinStockLevel   int             `gorm:"column:min_stock_level"`

	Tags      pq.StringArray `gorm:"column:tags;type:text[]"`
	ImageURLs pq.StringArray `gorm:"column:image_urls;type:text[]"`
	Active    bool           `gorm:"column:active;index"`
	Featured  bool           `gorm:"column:featured"`

	CreatedByID int64     `gorm:"column:created_by_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type categoryRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "product_categories" }

func newProductRecord(p *domain.Product) productRecord {
	rec := productRecord{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Brand:           p.Brand,
		SKU:             p.SKU,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		Stock:           p.Stock,
		MinStockLevel:   p.MinStockLevel,
		Active:          p.Active,
		Featured:        p.Featured,
		CreatedByID:     p.CreatedByID,
	}
	if len(p.Tags) > 0 {
		rec.Tags = pq.StringArray(append([]string{}, p.Tags...))
	}
	if len(p.ImageURLs) > 0 {
		rec.ImageURLs = pq.StringArray(append([]string{}, p.ImageURLs...))
	}
	return rec
}

func (r *productRecord) toDomain() *domain.Product {
	product := &domain.Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		CategoryID:      r.CategoryID,
		Brand:           r.Brand,
		SKU:             r.SKU,
		Price:           r.Price,
		DiscountPercent: r.DiscountPercent,
		Stock:           r.Stock,
		MinStockLevel:   r.MinStockLevel,
		Active:          r.Active,
		Featured:        r.Featured,
		CreatedByID:     r.CreatedByID,
	}
	if len(r.Tags) > 0 {
		product.Tags = append([]string{}, r.Tags...)
	}
	if len(r.ImageURLs) > 0 {
		product.ImageURLs = append([]string{}, r.ImageURLs...)
	}
	return product
}

// SaveProduct inserts or updates a product.
func (r *Repository) SaveProduct(ctx context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	record := newProductRecord(product)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	product.ID = record.ID
	return r.GetProduct(ctx, record.ID)
}

// GetProduct fetches a product by identifier.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*ports.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// DeleteProduct removes a product by identifier.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ListActive returns one page of active products plus the total count.
func (r *Repository) ListActive(ctx context.Context, page pagination.Request) ([]*ports.ProductProjection, int64, error) {
	return r.page(ctx, page, "active = ?", true)
}

// ListProducts returns one page of all products plus the total count.
func (r *Repository) ListProducts(ctx context.Context, page pagination.Request) ([]*ports.ProductProjection, int64, error) {
	return r.page(ctx, page, "")
}

// SaveCategory inserts or updates a category.
func (r *Repository) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("cannot save nil category")
	}
	record := categoryRecord{ID: category.ID, Name: category.Name, Description: category.Description}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return &domain.Category{ID: record.ID, Name: record.Name, Description: record.Description}, nil
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Category, 0, len(records))
	for _, rec := range records {
		list = append(list, &domain.Category{ID: rec.ID, Name: rec.Name, Description: rec.Description})
	}
	return list, nil
}

func (r *Repository) page(ctx context.Context, page pagination.Request, query string, args ...any) ([]*ports.ProductProjection, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	scope := r.db.WithContext(ctx).Model(&productRecord{})
	if query != "" {
		scope = scope.Where(query, args...)
	}
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []productRecord
	if err := scope.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*ports.ProductProjection, 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list, total, nil
}

func toProjection(record *productRecord) *ports.ProductProjection {
	return &ports.ProductProjection{
		Entity:   record.toDomain(),
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
