package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentGateway is the external payment provider. Calls happen outside any
// database transaction.
type PaymentGateway interface {
	// CreateOrder registers a payment intent for the amount (major currency
	// units; the client converts to minor units) and returns the gateway's
	// order reference.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (string, error)

	// VerifySignature checks the HMAC signature of a payment confirmation.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool

	// Refund returns the amount for an earlier payment.
	Refund(ctx context.Context, gatewayPaymentID string, amount decimal.Decimal) error
}
