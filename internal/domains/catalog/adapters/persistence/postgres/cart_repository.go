package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
)

var _ ports.CartRepository = (*CartRepository)(nil)

// CartRepository persists per-user cart lines in PostgreSQL.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;index:idx_cart_user_product,unique"`
	ProductID int64     `gorm:"column:product_id;index:idx_cart_user_product,unique"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_items" }

func (r *cartLineRecord) toDomain() *domain.CartLine {
	return &domain.CartLine{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
	}
}

// SaveLine inserts or updates a cart line.
func (r *CartRepository) SaveLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if line == nil {
		return nil, errors.New("cannot save nil cart line")
	}
	record := cartLineRecord{ID: line.ID, UserID: line.UserID, ProductID: line.ProductID, Quantity: line.Quantity}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	line.ID = record.ID
	return record.toDomain(), nil
}

// GetLine fetches a cart line by identifier.
func (r *CartRepository) GetLine(ctx context.Context, id int64) (*domain.CartLine, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartLineRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrLineNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindLine returns the line for a (user, product) pair.
func (r *CartRepository) FindLine(ctx context.Context, userID, productID int64) (*domain.CartLine, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartLineRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrLineNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListLines returns every line in the user's cart.
func (r *CartRepository) ListLines(ctx context.Context, userID int64) ([]*domain.CartLine, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartLineRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.CartLine, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

// DeleteLine removes a cart line by identifier.
func (r *CartRepository) DeleteLine(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&cartLineRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrLineNotFound
	}
	return nil
}

// ClearUser removes every line in the user's cart.
func (r *CartRepository) ClearUser(ctx context.Context, userID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cartLineRecord{}).Error
}

// CountLines returns the number of lines in the user's cart.
func (r *CartRepository) CountLines(ctx context.Context, userID int64) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&cartLineRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *CartRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
