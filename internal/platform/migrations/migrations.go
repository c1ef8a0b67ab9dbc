package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context plus the constraints the
// workflows rely on as a storage-level backstop: at most one PENDING adoption
// request per (pet, requester) pair, and stock that can never go negative.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&userRecord{},
		&petRecord{},
		&requestRecord{},
		&categoryRecord{},
		&productRecord{},
		&cartLineRecord{},
		&orderRecord{},
		&orderItemRecord{},
	); err != nil {
		return err
	}
	return applyConstraints(db)
}

func applyConstraints(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_adoption_requests_pending
			ON adoption_requests (pet_id, requester_id)
			WHERE status = 'PENDING'`,
		`ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative`,
		`ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative CHECK (stock >= 0)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Phone     string    `gorm:"column:phone"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	Verified  bool      `gorm:"column:verified"`
	Active    bool      `gorm:"column:active"`
	Bio       string    `gorm:"column:bio;type:text"`
	AvatarURL string    `gorm:"column:avatar_url"`
	City      string    `gorm:"column:city"`
	State     string    `gorm:"column:state"`
	Country   string    `gorm:"column:country"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	OwnerID     int64          `gorm:"column:owner_id;index"`
	Name        string         `gorm:"column:name"`
	Species     string         `gorm:"column:species"`
	Breed       string         `gorm:"column:breed"`
	AgeMonths   int            `gorm:"column:age_months"`
	Description string         `gorm:"column:description;type:text"`
	PhotoURLs   pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	AdoptedByID *int64         `gorm:"column:adopted_by_id"`
	AdoptedAt   *time.Time     `gorm:"column:adopted_at"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Adoption request schema mirrors the adoptions Postgres adapter.
type requestRecord struct {
	ID                int64      `gorm:"primaryKey;column:id"`
	PetID             int64      `gorm:"column:pet_id;index"`
	RequesterID       int64      `gorm:"column:requester_id;index"`
	Message           string     `gorm:"column:message;type:text"`
	RequesterPhone    string     `gorm:"column:requester_phone"`
	RequesterAddress  string     `gorm:"column:requester_address"`
	HousingType       string     `gorm:"column:housing_type"`
	HasExperience     bool       `gorm:"column:has_experience"`
	HasOtherPets      bool       `gorm:"column:has_other_pets"`
	HasChildren       bool       `gorm:"column:has_children"`
	YearsOfExperience int        `gorm:"column:years_of_experience"`
	Status            string     `gorm:"column:status;type:varchar(32);index"`
	OwnerNotes        string     `gorm:"column:owner_notes;type:text"`
	RequesterNotes    string     `gorm:"column:requester_notes;type:text"`
	ContactShared     bool       `gorm:"column:contact_shared"`
	ContactSharedAt   *time.Time `gorm:"column:contact_shared_at"`
	ReviewedByID      *int64     `gorm:"column:reviewed_by_id"`
	ReviewedAt        *time.Time `gorm:"column:reviewed_at"`
	CompletedAt       *time.Time `gorm:"column:completed_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (requestRecord) TableName() string { return "adoption_requests" }

// Category schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "product_categories" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	Name            string          `gorm:"column:name"`
	Description     string          `gorm:"column:description;type:text"`
	CategoryID      *int64          `gorm:"column:category_id;index"`
	Brand           string          `gorm:"column:brand"`
	SKU             string          `gorm:"column:sku;uniqueIndex"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)"`
	Stock           int             `gorm:"column:stock"`
	MinStockLevel   int             `gorm:"column:min_stock_level"`
	Tags            pq.StringArray  `gorm:"column:tags;type:text[]"`
	ImageURLs       pq.StringArray  `gorm:"column:image_urls;type:text[]"`
	Active          bool            `gorm:"column:active;index"`
	Featured        bool            `gorm:"column:featured"`
	CreatedByID     int64           `gorm:"column:created_by_id"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Cart schema mirrors the catalog Postgres adapter.
type cartLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index:idx_cart_user_product,unique"`
	ProductID int64     `gorm:"column:product_id;index:idx_cart_user_product,unique"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_items" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                  int64           `gorm:"primaryKey;column:id"`
	OrderNumber         string          `gorm:"column:order_number;uniqueIndex"`
	UserID              int64           `gorm:"column:user_id;index"`
	Subtotal            decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2)"`
	Discount            decimal.Decimal `gorm:"column:discount;type:numeric(12,2)"`
	Tax                 decimal.Decimal `gorm:"column:tax;type:numeric(12,2)"`
	Shipping            decimal.Decimal `gorm:"column:shipping;type:numeric(12,2)"`
	Total               decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Currency            string          `gorm:"column:currency;type:varchar(8)"`
	Status              string          `gorm:"column:status;type:varchar(32);index"`
	PaymentStatus       string          `gorm:"column:payment_status;type:varchar(32)"`
	PaymentMethod       string          `gorm:"column:payment_method;type:varchar(32)"`
	GatewayOrderID      string          `gorm:"column:gateway_order_id;index"`
	GatewayPaymentID    string          `gorm:"column:gateway_payment_id"`
	ShippingAddress     string          `gorm:"column:shipping_address;type:text"`
	BillingAddress      string          `gorm:"column:billing_address;type:text"`
	SpecialInstructions string          `gorm:"column:special_instructions;type:text"`
	TrackingNumber      string          `gorm:"column:tracking_number"`
	EstimatedDelivery   *time.Time      `gorm:"column:estimated_delivery"`
	DeliveredAt         *time.Time      `gorm:"column:delivered_at"`
	CreatedAt           time.Time       `gorm:"column:created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema mirrors the orders Postgres adapter.
type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	OrderID     int64           `gorm:"column:order_id;index"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Quantity    int             `gorm:"column:quantity"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(12,2)"`
	ImageURL    string          `gorm:"column:image_url"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }
