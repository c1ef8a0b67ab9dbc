package ports

import (
	"context"
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// PetProjection is the materialized view returned by repositories.
type PetProjection = projection.Projection[*domain.Pet]

type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*PetProjection, error)
	GetByID(ctx context.Context, id int64) (*PetProjection, error)
	Delete(ctx context.Context, id int64) error
	FindByStatus(ctx context.Context, statuses []domain.AdoptionStatus) ([]*PetProjection, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*PetProjection, error)
	List(ctx context.Context) ([]*PetProjection, error)
}
