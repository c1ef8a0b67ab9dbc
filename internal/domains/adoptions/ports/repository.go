package ports

import (
	"context"
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	petsdomain "github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("adoption request not found")
	// ErrDuplicatePending surfaces the store-level uniqueness backstop on
	// (pet, requester) pending requests.
	ErrDuplicatePending = errors.New("pending request already exists for this pet and requester")
)

// RequestProjection is the materialized view returned by repositories.
type RequestProjection = projection.Projection[*domain.Request]

// Repository persists adoption requests. Multi-row transitions go through
// CompleteAdoption so the request, its siblings, and the pet commit as one
// atomic unit.
type Repository interface {
	Create(ctx context.Context, req *domain.Request) (*RequestProjection, error)
	Save(ctx context.Context, req *domain.Request) (*RequestProjection, error)
	GetByID(ctx context.Context, id int64) (*RequestProjection, error)
	Delete(ctx context.Context, id int64) error

	FindPending(ctx context.Context, petID, requesterID int64) (*RequestProjection, error)
	ListByPet(ctx context.Context, petID int64) ([]*RequestProjection, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*RequestProjection, error)
	ListByPetIDs(ctx context.Context, petIDs []int64) ([]*RequestProjection, error)
	ListAll(ctx context.Context, page pagination.Request) ([]*RequestProjection, int64, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)

	// CompleteAdoption persists the adopted request, the auto-rejected
	// siblings, and the updated pet in a single transaction.
	CompleteAdoption(ctx context.Context, adopted *domain.Request, siblings []*domain.Request, pet *petsdomain.Pet) (*RequestProjection, error)
}
