package ports

import (
	"context"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

// CreateRequestInput carries the applicant's submission.
type CreateRequestInput struct {
	PetID             int64
	RequesterID       int64
	Message           string
	RequesterPhone    string
	RequesterAddress  string
	HousingType       string
	HasExperience     bool
	HasOtherPets      bool
	HasChildren       bool
	YearsOfExperience int
	RequesterNotes    string
}

// ReviewInput identifies a request plus the reviewing actor.
type ReviewInput struct {
	RequestID int64
	ActorID   int64
	Notes     string
}

// Service enumerates the adoption workflow use cases.
type Service interface {
	Create(ctx context.Context, input CreateRequestInput) (*RequestProjection, error)
	Approve(ctx context.Context, input ReviewInput) (*RequestProjection, error)
	Reject(ctx context.Context, input ReviewInput) (*RequestProjection, error)
	MarkAdopted(ctx context.Context, requestID, actorID int64) (*RequestProjection, error)
	Cancel(ctx context.Context, requestID, actorID int64) (*RequestProjection, error)
	Withdraw(ctx context.Context, requestID, actorID int64) (*RequestProjection, error)
	Delete(ctx context.Context, requestID, actorID int64) error

	GetByID(ctx context.Context, requestID int64) (*RequestProjection, error)
	ListByPet(ctx context.Context, petID int64) ([]*RequestProjection, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*RequestProjection, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]*RequestProjection, error)
	ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*RequestProjection], error)
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}
