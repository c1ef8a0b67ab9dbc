package application

import (
	"context"
	"errors"
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	petsdomain "github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	petsports "github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

var _ ports.Service = (*Service)(nil)

// Service coordinates the adoption workflow across the request and pet
// aggregates.
type Service struct {
	repo ports.Repository
	pets petsports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, pets petsports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, pets: pets, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the pet is available, the requester is not its owner, and
// no pending request already exists for the pair, then files the request.
func (s *Service) Create(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestProjection, error) {
	petProjection, err := s.pets.GetByID(ctx, input.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := petProjection.Entity
	if pet.OwnerID == input.RequesterID {
		return nil, apperr.InvalidState("you cannot request to adopt your own pet")
	}
	if !pet.Available() {
		return nil, apperr.InvalidState("pet is not available for adoption")
	}
	if existing, err := s.repo.FindPending(ctx, input.PetID, input.RequesterID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(err)
	} else if existing != nil {
		return nil, apperr.Conflict("you already have a pending request for this pet")
	}

	req, err := domain.NewRequest(input.PetID, input.RequesterID, input.Message, input.RequesterPhone)
	if err != nil {
		return nil, mapError(err)
	}
	req.RequesterAddress = input.RequesterAddress
	req.HousingType = input.HousingType
	req.HasExperience = input.HasExperience
	req.HasOtherPets = input.HasOtherPets
	req.HasChildren = input.HasChildren
	req.YearsOfExperience = input.YearsOfExperience
	req.RequesterNotes = input.RequesterNotes

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// Approve lets the pet owner approve a pending request, sharing contact
// details with the requester.
func (s *Service) Approve(ctx context.Context, input ports.ReviewInput) (*ports.RequestProjection, error) {
	req, _, err := s.loadForReview(ctx, input.RequestID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if err := req.Approve(input.ActorID, input.Notes, s.now()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Reject lets the pet owner reject a pending request.
func (s *Service) Reject(ctx context.Context, input ports.ReviewInput) (*ports.RequestProjection, error) {
	req, _, err := s.loadForReview(ctx, input.RequestID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if err := req.Reject(input.ActorID, input.Notes, s.now()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// MarkAdopted completes an approved adoption. The request, the pet, and every
// remaining pending sibling commit in a single transaction.
func (s *Service) MarkAdopted(ctx context.Context, requestID, actorID int64) (*ports.RequestProjection, error) {
	req, pet, err := s.loadForReview(ctx, requestID, actorID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := req.MarkAdopted(now); err != nil {
		return nil, mapError(err)
	}
	if err := pet.MarkAdopted(req.RequesterID, now); err != nil {
		return nil, mapError(err)
	}

	siblings, err := s.pendingSiblings(ctx, req, actorID, now)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CompleteAdoption(ctx, req, siblings, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return completed, nil
}

// Cancel lets the requester abandon a pending or approved request.
func (s *Service) Cancel(ctx context.Context, requestID, actorID int64) (*ports.RequestProjection, error) {
	return s.closeAsRequester(ctx, requestID, actorID, (*domain.Request).Cancel)
}

// Withdraw lets the requester withdraw a pending or approved request.
func (s *Service) Withdraw(ctx context.Context, requestID, actorID int64) (*ports.RequestProjection, error) {
	return s.closeAsRequester(ctx, requestID, actorID, (*domain.Request).Withdraw)
}

// Delete removes a request. Only the requester or the pet owner may delete,
// and completed adoptions stay on record.
func (s *Service) Delete(ctx context.Context, requestID, actorID int64) error {
	found, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return mapError(err)
	}
	req := found.Entity
	if req.RequesterID != actorID {
		petProjection, err := s.pets.GetByID(ctx, req.PetID)
		if err != nil {
			return mapError(err)
		}
		if petProjection.Entity.OwnerID != actorID {
			return apperr.Unauthorized("request belongs to another user")
		}
	}
	if !req.Deletable() {
		return apperr.InvalidState("completed adoptions cannot be deleted")
	}
	return mapError(s.repo.Delete(ctx, requestID))
}

func (s *Service) GetByID(ctx context.Context, requestID int64) (*ports.RequestProjection, error) {
	found, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

// ListByPet returns every request filed for a pet. Restricted to the pet
// owner at the transport layer.
func (s *Service) ListByPet(ctx context.Context, petID int64) ([]*ports.RequestProjection, error) {
	list, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func (s *Service) ListByRequester(ctx context.Context, requesterID int64) ([]*ports.RequestProjection, error) {
	list, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// ListForOwner returns the requests filed against any pet the owner has
// listed.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]*ports.RequestProjection, error) {
	petList, err := s.pets.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	if len(petList) == 0 {
		return nil, nil
	}
	petIDs := make([]int64, 0, len(petList))
	for _, p := range petList {
		petIDs = append(petIDs, p.Entity.ID)
	}
	list, err := s.repo.ListByPetIDs(ctx, petIDs)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

func (s *Service) ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*ports.RequestProjection], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListAll(ctx, page)
	if err != nil {
		return pagination.Page[*ports.RequestProjection]{}, mapError(err)
	}
	return pagination.NewPage(items, page, total), nil
}

func (s *Service) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return counts, nil
}

// loadForReview fetches the request and its pet, enforcing that the actor
// owns the pet.
func (s *Service) loadForReview(ctx context.Context, requestID, actorID int64) (*domain.Request, *petsdomain.Pet, error) {
	found, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	req := found.Entity
	petProjection, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	pet := petProjection.Entity
	if pet.OwnerID != actorID {
		return nil, nil, apperr.Unauthorized("only the pet owner can review this request")
	}
	return req, pet, nil
}

func (s *Service) closeAsRequester(ctx context.Context, requestID, actorID int64, transition func(*domain.Request) error) (*ports.RequestProjection, error) {
	found, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, mapError(err)
	}
	req := found.Entity
	if req.RequesterID != actorID {
		return nil, apperr.Unauthorized("request belongs to another user")
	}
	if err := transition(req); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) pendingSiblings(ctx context.Context, adopted *domain.Request, reviewerID int64, at time.Time) ([]*domain.Request, error) {
	all, err := s.repo.ListByPet(ctx, adopted.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	var siblings []*domain.Request
	for _, p := range all {
		sibling := p.Entity
		if sibling.ID == adopted.ID || sibling.Status != domain.StatusPending {
			continue
		}
		if err := sibling.RejectAsSibling(reviewerID, at); err != nil {
			return nil, mapError(err)
		}
		siblings = append(siblings, sibling)
	}
	return siblings, nil
}
