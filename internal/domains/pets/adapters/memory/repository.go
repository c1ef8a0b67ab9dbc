package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for development and tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a pet while maintaining metadata. New pets get a
// generated identifier.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*ports.PetProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if pet.ID == 0 {
		r.nextID++
		pet.ID = r.nextID
	} else if pet.ID > r.nextID {
		r.nextID = pet.ID
	}

	entry, ok := r.pets[pet.ID]
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}

	stored := &storedPet{pet: clonePet(pet), metadata: metadata}
	r.pets[pet.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*ports.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// FindByStatus returns pets with matching status.
func (r *Repository) FindByStatus(_ context.Context, statuses []domain.AdoptionStatus) ([]*ports.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := map[domain.AdoptionStatus]struct{}{}
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	var list []*ports.PetProjection
	for _, entry := range r.pets {
		if _, ok := set[entry.pet.Status]; ok {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// FindByOwner returns every pet posted by the given owner.
func (r *Repository) FindByOwner(_ context.Context, ownerID int64) ([]*ports.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*ports.PetProjection
	for _, entry := range r.pets {
		if entry.pet.OwnerID == ownerID {
			list = append(list, projectionCopy(entry))
		}
	}
	return list, nil
}

// List returns all pets.
func (r *Repository) List(_ context.Context) ([]*ports.PetProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.PetProjection, 0, len(r.pets))
	for _, entry := range r.pets {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

func projectionCopy(entry *storedPet) *ports.PetProjection {
	return &ports.PetProjection{
		Entity:   clonePet(entry.pet),
		Metadata: entry.metadata,
	}
}

func clonePet(p *domain.Pet) *domain.Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if len(p.PhotoURLs) > 0 {
		clone.PhotoURLs = append([]string{}, p.PhotoURLs...)
	}
	if p.AdoptedByID != nil {
		adopter := *p.AdoptedByID
		clone.AdoptedByID = &adopter
	}
	if p.AdoptedAt != nil {
		at := *p.AdoptedAt
		clone.AdoptedAt = &at
	}
	return &clone
}
