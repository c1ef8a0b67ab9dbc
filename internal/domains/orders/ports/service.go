package ports

import (
	"context"

	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

// CheckoutInput carries the buyer's checkout submission. The cart itself is
// read server-side.
type CheckoutInput struct {
	UserID              int64
	ShippingAddress     string
	BillingAddress      string
	SpecialInstructions string
}

// ConfirmPaymentInput carries the gateway's signed payment confirmation.
type ConfirmPaymentInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// Service enumerates the order use cases.
type Service interface {
	CheckoutCOD(ctx context.Context, input CheckoutInput) (*OrderProjection, error)
	CheckoutGateway(ctx context.Context, input CheckoutInput) (*OrderProjection, error)
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*OrderProjection, error)
	Cancel(ctx context.Context, orderID, actorID int64) (*OrderProjection, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (*OrderProjection, error)
	MarkDelivered(ctx context.Context, orderID int64) (*OrderProjection, error)

	GetByID(ctx context.Context, orderID, userID int64) (*OrderProjection, error)
	ListByUser(ctx context.Context, userID int64, page pagination.Request) (pagination.Page[*OrderProjection], error)
	ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*OrderProjection], error)
}
