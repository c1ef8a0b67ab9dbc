package application

import (
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	petsports "github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apperr.NotFound("adoption request not found")
	case errors.Is(err, petsports.ErrNotFound):
		return apperr.NotFound("pet not found")
	case errors.Is(err, ports.ErrDuplicatePending):
		return apperr.Conflict("you already have a pending request for this pet")
	case errors.Is(err, domain.ErrNotPending):
		return apperr.InvalidState("only pending requests can be reviewed")
	case errors.Is(err, domain.ErrNotApproved):
		return apperr.InvalidState("only approved requests can be marked as adopted")
	case errors.Is(err, domain.ErrNotCancellable):
		return apperr.InvalidState("request can no longer be cancelled")
	case errors.Is(err, domain.ErrAdoptedFinal):
		return apperr.InvalidState("adopted requests cannot be modified")
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyPhone):
		return apperr.InvalidInput("%s", err.Error())
	}
	return err
}
