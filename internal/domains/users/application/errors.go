package application

import (
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/users/domain"
	"github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperr.NotFound("user not found")
	case errors.Is(err, ports.ErrDuplicateEmail):
		return apperr.Conflict("email is already registered")
	case errors.Is(err, domain.ErrEmptyEmail):
		return apperr.InvalidInput("email is required")
	case errors.Is(err, domain.ErrEmptyFirstName):
		return apperr.InvalidInput("first name is required")
	case errors.Is(err, domain.ErrInvalidRole):
		return apperr.InvalidInput("role must be USER or ADMIN")
	case errors.Is(err, domain.ErrInactive):
		return apperr.InvalidState("user account is deactivated")
	}
	return err
}
