package mapper

import (
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/pets/ports"
)

// CreatePet captures the inbound payload for posting a new listing.
type CreatePet struct {
	Name        string   `json:"name" binding:"required"`
	Species     string   `json:"species,omitempty"`
	Breed       string   `json:"breed,omitempty"`
	AgeMonths   int      `json:"ageMonths,omitempty"`
	Description string   `json:"description,omitempty"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`
}

// UpdatePet captures partial updates while preserving field presence.
type UpdatePet struct {
	Name        *string   `json:"name,omitempty"`
	Species     *string   `json:"species,omitempty"`
	Breed       *string   `json:"breed,omitempty"`
	AgeMonths   *int      `json:"ageMonths,omitempty"`
	Description *string   `json:"description,omitempty"`
	PhotoURLs   *[]string `json:"photoUrls,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

// Pet is the HTTP representation of a listing.
type Pet struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"ownerId"`
	Name        string     `json:"name"`
	Species     string     `json:"species,omitempty"`
	Breed       string     `json:"breed,omitempty"`
	AgeMonths   int        `json:"ageMonths,omitempty"`
	Description string     `json:"description,omitempty"`
	PhotoURLs   []string   `json:"photoUrls"`
	Status      string     `json:"status"`
	AdoptedByID *int64     `json:"adoptedById,omitempty"`
	AdoptedAt   *time.Time `json:"adoptedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToCreateInput maps the transport payload into a service input for the
// authenticated owner.
func (c CreatePet) ToCreateInput(ownerID int64) ports.CreatePetInput {
	return ports.CreatePetInput{
		OwnerID:     ownerID,
		Name:        c.Name,
		Species:     c.Species,
		Breed:       c.Breed,
		AgeMonths:   c.AgeMonths,
		Description: c.Description,
		PhotoURLs:   c.PhotoURLs,
	}
}

// ToUpdateInput maps the transport payload into a service input.
func (u UpdatePet) ToUpdateInput(petID, actorID int64) ports.UpdatePetInput {
	return ports.UpdatePetInput{
		ID:          petID,
		ActorID:     actorID,
		Name:        u.Name,
		Species:     u.Species,
		Breed:       u.Breed,
		AgeMonths:   u.AgeMonths,
		Description: u.Description,
		PhotoURLs:   u.PhotoURLs,
		Status:      u.Status,
	}
}

// FromProjection maps a projection into the transport representation.
func FromProjection(p *ports.PetProjection) *Pet {
	if p == nil || p.Entity == nil {
		return nil
	}
	pet := p.Entity
	photos := pet.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	return &Pet{
		ID:          pet.ID,
		OwnerID:     pet.OwnerID,
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		AgeMonths:   pet.AgeMonths,
		Description: pet.Description,
		PhotoURLs:   photos,
		Status:      string(pet.Status),
		AdoptedByID: pet.AdoptedByID,
		AdoptedAt:   pet.AdoptedAt,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromProjections maps a slice of projections.
func FromProjections(list []*ports.PetProjection) []*Pet {
	out := make([]*Pet, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
