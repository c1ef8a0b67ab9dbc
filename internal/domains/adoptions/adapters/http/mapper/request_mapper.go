package mapper

import (
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
)

// CreateRequest captures the inbound payload for filing an adoption request.
type CreateRequest struct {
	PetID             int64  `json:"petId" binding:"required"`
	Message           string `json:"message" binding:"required"`
	RequesterPhone    string `json:"requesterPhone" binding:"required"`
	RequesterAddress  string `json:"requesterAddress,omitempty"`
	HousingType       string `json:"housingType,omitempty"`
	HasExperience     bool   `json:"hasExperience,omitempty"`
	HasOtherPets      bool   `json:"hasOtherPets,omitempty"`
	HasChildren       bool   `json:"hasChildren,omitempty"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
	RequesterNotes    string `json:"requesterNotes,omitempty"`
}

// Review captures the owner's notes on approve and reject.
type Review struct {
	Notes string `json:"notes,omitempty"`
}

// Request is the HTTP representation of an adoption request.
type Request struct {
	ID          int64 `json:"id"`
	PetID       int64 `json:"petId"`
	RequesterID int64 `json:"requesterId"`

	Message          string `json:"message"`
	RequesterAddress string `json:"requesterAddress,omitempty"`
	HousingType      string `json:"housingType,omitempty"`

	HasExperience     bool `json:"hasExperience"`
	HasOtherPets      bool `json:"hasOtherPets"`
	HasChildren       bool `json:"hasChildren"`
	YearsOfExperience int  `json:"yearsOfExperience"`

	Status         string `json:"status"`
	OwnerNotes     string `json:"ownerNotes,omitempty"`
	RequesterNotes string `json:"requesterNotes,omitempty"`

	ContactShared   bool       `json:"contactShared"`
	ContactSharedAt *time.Time `json:"contactSharedAt,omitempty"`
	RequesterPhone  string     `json:"requesterPhone,omitempty"`

	ReviewedByID *int64     `json:"reviewedById,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCreateInput maps the transport payload into a service input for the
// authenticated requester.
func (c CreateRequest) ToCreateInput(requesterID int64) ports.CreateRequestInput {
	return ports.CreateRequestInput{
		PetID:             c.PetID,
		RequesterID:       requesterID,
		Message:           c.Message,
		RequesterPhone:    c.RequesterPhone,
		RequesterAddress:  c.RequesterAddress,
		HousingType:       c.HousingType,
		HasExperience:     c.HasExperience,
		HasOtherPets:      c.HasOtherPets,
		HasChildren:       c.HasChildren,
		YearsOfExperience: c.YearsOfExperience,
		RequesterNotes:    c.RequesterNotes,
	}
}

// FromProjection maps a projection into the transport representation. The
// requester's phone is withheld until contact details are shared.
func FromProjection(p *ports.RequestProjection) *Request {
	if p == nil || p.Entity == nil {
		return nil
	}
	req := p.Entity
	out := &Request{
		ID:                req.ID,
		PetID:             req.PetID,
		RequesterID:       req.RequesterID,
		Message:           req.Message,
		RequesterAddress:  req.RequesterAddress,
		HousingType:       req.HousingType,
		HasExperience:     req.HasExperience,
		HasOtherPets:      req.HasOtherPets,
		HasChildren:       req.HasChildren,
		YearsOfExperience: req.YearsOfExperience,
		Status:            string(req.Status),
		OwnerNotes:        req.OwnerNotes,
		RequesterNotes:    req.RequesterNotes,
		ContactShared:     req.ContactShared,
		ContactSharedAt:   req.ContactSharedAt,
		ReviewedByID:      req.ReviewedByID,
		ReviewedAt:        req.ReviewedAt,
		CompletedAt:       req.CompletedAt,
		CreatedAt:         p.Metadata.CreatedAt,
		UpdatedAt:         p.Metadata.UpdatedAt,
	}
	if req.ContactShared {
		out.RequesterPhone = req.RequesterPhone
	}
	return out
}

// FromProjections maps a slice of projections.
func FromProjections(list []*ports.RequestProjection) []*Request {
	out := make([]*Request, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
