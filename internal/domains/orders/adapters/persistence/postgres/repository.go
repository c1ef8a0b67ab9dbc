package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogdomain "github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM-mapped columns. The
// checkout side effects (stock decrement, cart wipe) run in the same
// transaction as the order rows, with a conditional UPDATE guarding stock
// against concurrent checkouts.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB
// lifecycle; schema setup lives in platform/migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID          int64  `gorm:"primaryKey;column:id;autoIncrement"`
	OrderNumber string `gorm:"column:order_number;uniqueIndex"`
	UserID      int64  `gorm:"column:user_id;index"`

	Subtotal decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	Discount decimal.Decimal `gorm:"column:discount;type:numeric(12,2)"`
	Tax      decimal.Decimal `gorm:"column:tax;type:numeric(12,2)"`
	Shipping decimal.Decimal `gorm:"column:shipping;type:numeric(12,2)"`
	Total    decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Currency string          `gorm:"column:currency;type:varchar(8)"`

	Status        string `gorm:"column:status;type:varchar(32);index"`
	PaymentStatus string `gorm:"column:payment_status;type:varchar(32)"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(32)"`

	GatewayOrderID   string `gorm:"column:gateway_order_id;index"`
	GatewayPaymentID string `gorm:"column:gateway_payment_id"`

	ShippingAddress     string `gorm:"column:shipping_address;type:text"`
	BillingAddress      string `gorm:"column:billing_address;type:text"`
	SpecialInstructions string `gorm:"column:special_instructions;type:text"`
	TrackingNumber      string `gorm:"column:tracking_number"`

	EstimatedDelivery *time.Time `gorm:"column:estimated_delivery"`
	DeliveredAt       *time.Time `gorm:"column:delivered_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Items []orderItemRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID     int64           `gorm:"column:order_id;index"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Quantity    int             `gorm:"column:quantity"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(12,2)"`
	ImageURL    string          `gorm:"column:image_url"`
}

func (orderItemRecord) TableName() string { return "order_items" }

func newOrderRecord(o *domain.Order) orderRecord {
	rec := orderRecord{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		UserID:              o.UserID,
		Subtotal:            o.Subtotal,
		Discount:            o.Discount,
		Tax:                 o.Tax,
		Shipping:            o.Shipping,
		Total:               o.Total,
		Currency:            o.Currency,
		Status:              string(o.Status),
		PaymentStatus:       string(o.PaymentStatus),
		PaymentMethod:       o.PaymentMethod,
		GatewayOrderID:      o.GatewayOrderID,
		GatewayPaymentID:    o.GatewayPaymentID,
		ShippingAddress:     o.ShippingAddress,
		BillingAddress:      o.BillingAddress,
		SpecialInstructions: o.SpecialInstructions,
		TrackingNumber:      o.TrackingNumber,
		EstimatedDelivery:   o.EstimatedDelivery,
		DeliveredAt:         o.DeliveredAt,
	}
	for _, item := range o.Items {
		rec.Items = append(rec.Items, orderItemRecord{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
			ImageURL:    item.ImageURL,
		})
	}
	return rec
}

func (r *orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:                  r.ID,
		OrderNumber:         r.OrderNumber,
		UserID:              r.UserID,
		Subtotal:            r.Subtotal,
		Discount:            r.Discount,
		Tax:                 r.Tax,
		Shipping:            r.Shipping,
		Total:               r.Total,
		Currency:            r.Currency,
		Status:              domain.Status(r.Status),
		PaymentStatus:       domain.PaymentStatus(r.PaymentStatus),
		PaymentMethod:       r.PaymentMethod,
		GatewayOrderID:      r.GatewayOrderID,
		GatewayPaymentID:    r.GatewayPaymentID,
		ShippingAddress:     r.ShippingAddress,
		BillingAddress:      r.BillingAddress,
		SpecialInstructions: r.SpecialInstructions,
		TrackingNumber:      r.TrackingNumber,
		EstimatedDelivery:   r.EstimatedDelivery,
		DeliveredAt:         r.DeliveredAt,
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
			ImageURL:    item.ImageURL,
		})
	}
	return order
}

// GetByID fetches an order with its items.
func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// GetByGatewayOrderID fetches the order holding the gateway reference.
func (r *Repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).Preload("Items").
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// Save updates an existing order. Items are immutable and left untouched.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	if order.ID == 0 {
		return nil, ports.ErrNotFound
	}
	record := newOrderRecord(order)
	record.Items = nil
	if err := r.db.WithContext(ctx).Omit("Items").Save(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// ListByUser returns one page of the user's orders plus the total count.
func (r *Repository) ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]*ports.OrderProjection, int64, error) {
	return r.page(ctx, page, "user_id = ?", userID)
}

// ListAll returns one page of all orders plus the total count.
func (r *Repository) ListAll(ctx context.Context, page pagination.Request) ([]*ports.OrderProjection, int64, error) {
	return r.page(ctx, page, "")
}

// Checkout persists a new order with its items; when finalize is true the
// stock decrement and cart wipe commit in the same transaction.
func (r *Repository) Checkout(ctx context.Context, order *domain.Order, finalize bool) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot checkout nil order")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := newOrderRecord(order)
		record.ID = 0
		for i := range record.Items {
			record.Items[i].ID = 0
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		order.ID = record.ID
		for i := range record.Items {
			order.Items[i].ID = record.Items[i].ID
			order.Items[i].OrderID = record.ID
		}
		if finalize {
			return applySideEffects(tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// Finalize saves the order and performs the deferred stock decrement and cart
// wipe in one transaction.
func (r *Repository) Finalize(ctx context.Context, order *domain.Order) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot finalize nil order")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := newOrderRecord(order)
		record.Items = nil
		if err := tx.Omit("Items").Save(&record).Error; err != nil {
			return err
		}
		return applySideEffects(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// applySideEffects decrements stock with a conditional UPDATE so concurrent
// checkouts can never drive stock negative, then wipes the buyer's cart.
func applySideEffects(tx *gorm.DB, order *domain.Order) error {
	for _, item := range order.Items {
		result := tx.Table("products").
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			Updates(map[string]any{
				"stock":      gorm.Expr("stock - ?", item.Quantity),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalogdomain.ErrInsufficientStock
		}
	}
	return tx.Exec("DELETE FROM cart_items WHERE user_id = ?", order.UserID).Error
}

func (r *Repository) page(ctx context.Context, page pagination.Request, query string, args ...any) ([]*ports.OrderProjection, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	scope := r.db.WithContext(ctx).Model(&orderRecord{})
	if query != "" {
		scope = scope.Where(query, args...)
	}
	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []orderRecord
	if err := scope.Preload("Items").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	list := make([]*ports.OrderProjection, 0, len(records))
	for i := range records {
		list = append(list, toProjection(&records[i]))
	}
	return list, total, nil
}

func toProjection(record *orderRecord) *ports.OrderProjection {
	return &ports.OrderProjection{
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
