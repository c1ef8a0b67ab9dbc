package ports

import (
	"context"
)

// CreatePetInput carries the fields a new listing accepts from its owner.
type CreatePetInput struct {
	OwnerID     int64
	Name        string
	Species     string
	Breed       string
	AgeMonths   int
	Description string
	PhotoURLs   []string
}

// UpdatePetInput mutates an existing listing; nil fields are left untouched.
type UpdatePetInput struct {
	ID          int64
	ActorID     int64
	Name        *string
	Species     *string
	Breed       *string
	AgeMonths   *int
	Description *string
	PhotoURLs   *[]string
	Status      *string
}

// UploadPhotoInput carries an image to attach to a listing.
type UploadPhotoInput struct {
	PetID    int64
	ActorID  int64
	Filename string
	Content  []byte
}

// Service enumerates the pets bounded context use cases.
type Service interface {
	Create(ctx context.Context, input CreatePetInput) (*PetProjection, error)
	Update(ctx context.Context, input UpdatePetInput) (*PetProjection, error)
	GetByID(ctx context.Context, id int64) (*PetProjection, error)
	Delete(ctx context.Context, id, actorID int64) error
	FindByStatus(ctx context.Context, statuses []string) ([]*PetProjection, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*PetProjection, error)
	UploadPhoto(ctx context.Context, input UploadPhotoInput) (*PetProjection, error)
	List(ctx context.Context) ([]*PetProjection, error)
}
