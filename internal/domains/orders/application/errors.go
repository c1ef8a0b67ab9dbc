package application

import (
	"errors"

	catalogdomain "github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperr.NotFound("order not found")
	case errors.Is(err, catalogports.ErrNotFound):
		return apperr.NotFound("product not found")
	case errors.Is(err, catalogdomain.ErrInsufficientStock):
		return apperr.Conflict("insufficient stock for this order")
	case errors.Is(err, catalogdomain.ErrEmptyCart):
		return apperr.InvalidState("cart is empty")
	case errors.Is(err, domain.ErrNotCancellable):
		return apperr.InvalidState("order can no longer be cancelled")
	case errors.Is(err, domain.ErrAlreadyPaid):
		return apperr.InvalidState("order has already been paid")
	case errors.Is(err, domain.ErrNotGatewayOrder):
		return apperr.InvalidState("order was not placed through the payment gateway")
	case errors.Is(err, domain.ErrInvalidStatus):
		return apperr.InvalidInput("order status is invalid")
	case errors.Is(err, domain.ErrEmptyShippingAddress):
		return apperr.InvalidInput("shipping address is required")
	}
	return err
}
