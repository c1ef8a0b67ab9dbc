package application

import (
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperr.NotFound("pet not found")
	case errors.Is(err, domain.ErrAlreadyAdopted):
		return apperr.InvalidState("pet has already been adopted")
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrMissingOwner),
		errors.Is(err, domain.ErrInvalidStatus):
		return apperr.InvalidInput("%s", err.Error())
	}
	return err
}
