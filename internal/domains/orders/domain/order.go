package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusProcessing     Status = "PROCESSING"
	StatusShipped        Status = "SHIPPED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusRefunded       Status = "REFUNDED"
)

// PaymentStatus tracks the money side independently of fulfilment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Payment methods.
const (
	MethodCOD     = "COD"
	MethodGateway = "GATEWAY"
)

var (
	ErrEmptyShippingAddress = errors.New("shipping address is required")
	ErrInvalidStatus        = errors.New("order status is invalid")
	ErrNotCancellable       = errors.New("order can no longer be cancelled")
	ErrNotGatewayOrder      = errors.New("order was not placed through the payment gateway")
	ErrAlreadyPaid          = errors.New("order has already been paid")
)

var validStatuses = map[Status]struct{}{
	StatusPending:        {},
	StatusConfirmed:      {},
	StatusProcessing:     {},
	StatusShipped:        {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// OrderItem is an immutable snapshot of one cart line at purchase time.
// UnitPrice is the per-unit price after discount; later catalog edits never
// touch these rows.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
	ImageURL    string
}

// Order is created once from a cart snapshot and mutated only through the
// transition methods below.
type Order struct {
	ID          int64
	OrderNumber string
	UserID      int64

	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	Currency string

	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod string

	GatewayOrderID   string
	GatewayPaymentID string

	ShippingAddress     string
	BillingAddress      string
	SpecialInstructions string
	TrackingNumber      string

	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time

	Items []OrderItem
}

// NewOrder materializes a quote into a pending, unpaid order.
func NewOrder(orderNumber string, userID int64, method string, quote Quote, shippingAddress, billingAddress, instructions string) (*Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrEmptyShippingAddress
	}
	order := &Order{
		OrderNumber:         orderNumber,
		UserID:              userID,
		Subtotal:            quote.Subtotal,
		Discount:            quote.Discount,
		Tax:                 quote.Tax,
		Shipping:            quote.Shipping,
		Total:               quote.Total,
		Currency:            "INR",
		Status:              StatusPending,
		PaymentStatus:       PaymentPending,
		PaymentMethod:       method,
		ShippingAddress:     shippingAddress,
		BillingAddress:      billingAddress,
		SpecialInstructions: instructions,
	}
	for _, line := range quote.Lines {
		order.Items = append(order.Items, OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
			ImageURL:    line.ImageURL,
		})
	}
	return order, nil
}

// AttachGatewayOrder records the external payment-intent reference.
func (o *Order) AttachGatewayOrder(gatewayOrderID string) {
	o.GatewayOrderID = gatewayOrderID
}

// ConfirmPayment marks a gateway order paid and confirmed.
func (o *Order) ConfirmPayment(gatewayPaymentID string) error {
	if o.PaymentMethod != MethodGateway {
		return ErrNotGatewayOrder
	}
	if o.PaymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	o.PaymentStatus = PaymentPaid
	o.Status = StatusConfirmed
	o.GatewayPaymentID = gatewayPaymentID
	return nil
}

// Cancellable reports whether the order may still be cancelled.
func (o *Order) Cancellable() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Cancel moves the order to CANCELLED. Refund handling is the caller's
// concern; MarkRefunded records the outcome.
func (o *Order) Cancel() error {
	if !o.Cancellable() {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	return nil
}

// Paid reports whether the order has been paid for.
func (o *Order) Paid() bool { return o.PaymentStatus == PaymentPaid }

// MarkRefunded records a completed refund.
func (o *Order) MarkRefunded() { o.PaymentStatus = PaymentRefunded }

// UpdateStatus applies an admin fulfilment transition. Delivery stamps the
// timestamp; COD orders collect payment at the door, so delivery also flips
// the payment status.
func (o *Order) UpdateStatus(status Status, at time.Time) error {
	if _, ok := validStatuses[status]; !ok {
		return ErrInvalidStatus
	}
	o.Status = status
	if status == StatusDelivered {
		delivered := at
		o.DeliveredAt = &delivered
		if o.PaymentMethod == MethodCOD {
			o.PaymentStatus = PaymentPaid
		}
	}
	return nil
}

// MarkDelivered is the delivery transition.
func (o *Order) MarkDelivered(at time.Time) error {
	return o.UpdateStatus(StatusDelivered, at)
}
