package application

import (
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/catalog/domain"
	"github.com/pethaven/pethaven-api/internal/domains/catalog/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperr.NotFound("product not found")
	case errors.Is(err, ports.ErrLineNotFound):
		return apperr.NotFound("cart item not found")
	case errors.Is(err, domain.ErrInsufficientStock):
		return apperr.Conflict("insufficient stock for this product")
	case errors.Is(err, domain.ErrInactiveProduct):
		return apperr.InvalidState("product is not available")
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrNegativeStock),
		errors.Is(err, domain.ErrInvalidQuantity):
		return apperr.InvalidInput("%s", err.Error())
	}
	return err
}
