package application

import (
	"context"
	"fmt"

	"github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo   ports.Repository
	images ports.ImageStore
}

// NewService wires the pets service with its dependencies. The image store
// may be nil when photo uploads are disabled.
func NewService(repo ports.Repository, images ports.ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

// Create persists a new pet listing owned by the caller.
func (s *Service) Create(ctx context.Context, input ports.CreatePetInput) (*ports.PetProjection, error) {
	pet, err := domain.NewPet(0, input.OwnerID, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	pet.Species = input.Species
	pet.Breed = input.Breed
	pet.AgeMonths = input.AgeMonths
	pet.Description = input.Description
	pet.ReplacePhotos(input.PhotoURLs)
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies a partial mutation; only the owner may change a listing.
func (s *Service) Update(ctx context.Context, input ports.UpdatePetInput) (*ports.PetProjection, error) {
	proj, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := proj.Entity
	if pet.OwnerID != input.ActorID {
		return nil, apperr.Unauthorized("you can only update your own pets")
	}
	if input.Name != nil {
		if err := pet.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Species != nil {
		pet.Species = *input.Species
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.AgeMonths != nil {
		pet.AgeMonths = *input.AgeMonths
	}
	if input.Description != nil {
		pet.Description = *input.Description
	}
	if input.PhotoURLs != nil {
		pet.ReplacePhotos(*input.PhotoURLs)
	}
	if input.Status != nil {
		if err := pet.UpdateStatus(domain.AdoptionStatus(*input.Status)); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single listing.
func (s *Service) GetByID(ctx context.Context, id int64) (*ports.PetProjection, error) {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return proj, nil
}

// Delete removes a listing; only the owner may delete, and adopted listings
// are kept as historical records.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	pet := proj.Entity
	if pet.OwnerID != actorID {
		return apperr.Unauthorized("you can only delete your own pets")
	}
	if pet.Status == domain.StatusAdopted {
		return apperr.InvalidState("adopted listings cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// FindByStatus searches listings matching any of the provided statuses,
// defaulting to AVAILABLE.
func (s *Service) FindByStatus(ctx context.Context, statuses []string) ([]*ports.PetProjection, error) {
	parsed := make([]domain.AdoptionStatus, 0, len(statuses))
	for _, status := range statuses {
		parsed = append(parsed, domain.AdoptionStatus(status))
	}
	if len(parsed) == 0 {
		parsed = []domain.AdoptionStatus{domain.StatusAvailable}
	}
	result, err := s.repo.FindByStatus(ctx, parsed)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByOwner returns every listing posted by the given owner.
func (s *Service) FindByOwner(ctx context.Context, ownerID int64) ([]*ports.PetProjection, error) {
	result, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// UploadPhoto pushes the image to the external store, then records the
// returned URL on the listing. The upload happens before any persistence so
// a storage failure leaves the listing untouched.
func (s *Service) UploadPhoto(ctx context.Context, input ports.UploadPhotoInput) (*ports.PetProjection, error) {
	if s.images == nil {
		return nil, apperr.External(nil, "image storage is not configured")
	}
	proj, err := s.repo.GetByID(ctx, input.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := proj.Entity
	if pet.OwnerID != input.ActorID {
		return nil, apperr.Unauthorized("you can only upload photos for your own pets")
	}
	asset, err := s.images.Upload(ctx, fmt.Sprintf("pets/%d/%s", pet.ID, input.Filename), input.Content)
	if err != nil {
		return nil, apperr.External(err, "image upload failed")
	}
	pet.AttachPhoto(asset.URL)
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// List exposes all listings for admin use cases.
func (s *Service) List(ctx context.Context) ([]*ports.PetProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
