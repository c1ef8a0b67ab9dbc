package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
)

// Checkout captures the inbound payload for both checkout flows.
type Checkout struct {
	ShippingAddress     string `json:"shippingAddress" binding:"required"`
	BillingAddress      string `json:"billingAddress,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// ConfirmPayment captures the gateway's signed confirmation callback.
type ConfirmPayment struct {
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"gatewaySignature" binding:"required"`
}

// UpdateStatus captures an admin fulfilment transition.
type UpdateStatus struct {
	Status string `json:"status" binding:"required"`
}

// OrderItem is the HTTP representation of an immutable order line.
type OrderItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Order is the HTTP representation of an order snapshot.
type Order struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	UserID      int64  `json:"userId"`

	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`

	GatewayOrderID string `json:"gatewayOrderId,omitempty"`

	ShippingAddress     string `json:"shippingAddress"`
	BillingAddress      string `json:"billingAddress,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
	TrackingNumber      string `json:"trackingNumber,omitempty"`

	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`

	Items []OrderItem `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCheckoutInput maps the transport payload into a service input for the
// authenticated buyer.
func (c Checkout) ToCheckoutInput(userID int64) ports.CheckoutInput {
	return ports.CheckoutInput{
		UserID:              userID,
		ShippingAddress:     c.ShippingAddress,
		BillingAddress:      c.BillingAddress,
		SpecialInstructions: c.SpecialInstructions,
	}
}

// ToConfirmInput maps the confirmation payload into a service input.
func (c ConfirmPayment) ToConfirmInput() ports.ConfirmPaymentInput {
	return ports.ConfirmPaymentInput{
		GatewayOrderID:   c.GatewayOrderID,
		GatewayPaymentID: c.GatewayPaymentID,
		Signature:        c.Signature,
	}
}

// FromProjection maps a projection into the transport representation.
func FromProjection(p *ports.OrderProjection) *Order {
	if p == nil || p.Entity == nil {
		return nil
	}
	o := p.Entity
	out := &Order{
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
		ShippingAddress:     o.ShippingAddress,
		BillingAddress:      o.BillingAddress,
		SpecialInstructions: o.SpecialInstructions,
		TrackingNumber:      o.TrackingNumber,
		EstimatedDelivery:   o.EstimatedDelivery,
		DeliveredAt:         o.DeliveredAt,
		Items:               make([]OrderItem, 0, len(o.Items)),
		CreatedAt:           p.Metadata.CreatedAt,
		UpdatedAt:           p.Metadata.UpdatedAt,
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, OrderItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
			ImageURL:    item.ImageURL,
		})
	}
	return out
}

// FromProjections maps a slice of projections.
func FromProjections(list []*ports.OrderProjection) []*Order {
	out := make([]*Order, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
