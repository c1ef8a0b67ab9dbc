package domain

import (
	"errors"
	"strings"
	"time"
)

// AdoptionStatus represents the lifecycle state of a pet listing.
type AdoptionStatus string

const (
	StatusAvailable AdoptionStatus = "AVAILABLE"
	StatusPending   AdoptionStatus = "PENDING"
	StatusAdopted   AdoptionStatus = "ADOPTED"
)

var (
	ErrEmptyName      = errors.New("pet name is required")
	ErrMissingOwner   = errors.New("pet owner is required")
	ErrInvalidStatus  = errors.New("pet adoption status is invalid")
	ErrAlreadyAdopted = errors.New("pet has already been adopted")
)

// Pet represents a listing managed by the pets bounded context. Adoption
// state moves through the adoption workflow, never directly by clients.
type Pet struct {
	ID          int64
	OwnerID     int64
	Name        string
	Species     string
	Breed       string
	AgeMonths   int
	Description string
	PhotoURLs   []string
	Status      AdoptionStatus
	AdoptedByID *int64
	AdoptedAt   *time.Time
}

// NewPet validates the invariants and builds a new Pet listing.
func NewPet(id, ownerID int64, name string) (*Pet, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	p := &Pet{ID: id, OwnerID: ownerID, Status: StatusAvailable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ReplacePhotos swaps the stored photo references.
func (p *Pet) ReplacePhotos(urls []string) {
	p.PhotoURLs = append([]string{}, urls...)
}

// AttachPhoto appends one uploaded photo reference.
func (p *Pet) AttachPhoto(url string) {
	if strings.TrimSpace(url) == "" {
		return
	}
	p.PhotoURLs = append(p.PhotoURLs, url)
}

// UpdateStatus validates known lifecycle values. ADOPTED is reserved for
// MarkAdopted so the adopter reference is always recorded alongside it.
func (p *Pet) UpdateStatus(status AdoptionStatus) error {
	switch status {
	case StatusAvailable, StatusPending:
		if p.Status == StatusAdopted {
			return ErrAlreadyAdopted
		}
		p.Status = status
		return nil
	case StatusAdopted:
		return ErrInvalidStatus
	default:
		return ErrInvalidStatus
	}
}

// MarkAdopted records the terminal adoption outcome and the adopter.
func (p *Pet) MarkAdopted(adopterID int64, at time.Time) error {
	if p.Status == StatusAdopted {
		return ErrAlreadyAdopted
	}
	p.Status = StatusAdopted
	adopter := adopterID
	p.AdoptedByID = &adopter
	when := at
	p.AdoptedAt = &when
	return nil
}

// Available reports whether the listing accepts new adoption requests.
func (p *Pet) Available() bool { return p.Status == StatusAvailable }
