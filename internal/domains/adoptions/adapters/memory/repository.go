package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	petsdomain "github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	petsports "github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for development and tests.
// CompleteAdoption writes the pet through the injected pets repository so the
// two stores stay consistent.
type Repository struct {
	mu       sync.RWMutex
	requests map[int64]*storedRequest
	nextID   int64
	now      func() time.Time
	pets     petsports.Repository
}

type storedRequest struct {
	request  *domain.Request
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store backed by the given pets
// repository.
func NewRepository(pets petsports.Repository) *Repository {
	return &Repository{
		requests: map[int64]*storedRequest{},
		now:      time.Now,
		pets:     pets,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create inserts a new request, assigning an identifier and enforcing the
// pending uniqueness backstop.
func (r *Repository) Create(_ context.Context, req *domain.Request) (*ports.RequestProjection, error) {
	if req == nil {
		return nil, errors.New("cannot create nil request")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if req.Status == domain.StatusPending {
		for _, entry := range r.requests {
			if entry.request.PetID == req.PetID &&
				entry.request.RequesterID == req.RequesterID &&
				entry.request.Status == domain.StatusPending {
				return nil, ports.ErrDuplicatePending
			}
		}
	}

	r.nextID++
	req.ID = r.nextID
	timestamp := r.now()
	stored := &storedRequest{
		request:  cloneRequest(req),
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.requests[req.ID] = stored
	return projectionCopy(stored), nil
}

// Save replaces an existing request while maintaining metadata.
func (r *Repository) Save(_ context.Context, req *domain.Request) (*ports.RequestProjection, error) {
	if req == nil {
		return nil, errors.New("cannot save nil request")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(req)
}

// GetByID fetches a request if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a request.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

// FindPending returns the pending request for a (pet, requester) pair.
func (r *Repository) FindPending(_ context.Context, petID, requesterID int64) (*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.requests {
		if entry.request.PetID == petID &&
			entry.request.RequesterID == requesterID &&
			entry.request.Status == domain.StatusPending {
			return projectionCopy(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

// ListByPet returns every request filed for the given pet.
func (r *Repository) ListByPet(_ context.Context, petID int64) ([]*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*ports.RequestProjection
	for _, entry := range r.requests {
		if entry.request.PetID == petID {
			list = append(list, projectionCopy(entry))
		}
	}
	sortNewestFirst(list)
	return list, nil
}

// ListByRequester returns every request filed by the given user.
func (r *Repository) ListByRequester(_ context.Context, requesterID int64) ([]*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*ports.RequestProjection
	for _, entry := range r.requests {
		if entry.request.RequesterID == requesterID {
			list = append(list, projectionCopy(entry))
		}
	}
	sortNewestFirst(list)
	return list, nil
}

// ListByPetIDs returns every request filed for any of the given pets.
func (r *Repository) ListByPetIDs(_ context.Context, petIDs []int64) ([]*ports.RequestProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := map[int64]struct{}{}
	for _, id := range petIDs {
		wanted[id] = struct{}{}
	}
	var list []*ports.RequestProjection
	for _, entry := range r.requests {
		if _, ok := wanted[entry.request.PetID]; ok {
			list = append(list, projectionCopy(entry))
		}
	}
	sortNewestFirst(list)
	return list, nil
}

// ListAll returns one page of requests plus the total count.
func (r *Repository) ListAll(_ context.Context, page pagination.Request) ([]*ports.RequestProjection, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*ports.RequestProjection, 0, len(r.requests))
	for _, entry := range r.requests {
		all = append(all, projectionCopy(entry))
	}
	sortNewestFirst(all)

	total := int64(len(all))
	offset := page.Offset()
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// CountByStatus tallies requests per lifecycle status.
func (r *Repository) CountByStatus(_ context.Context) (map[domain.Status]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[domain.Status]int64{}
	for _, entry := range r.requests {
		counts[entry.request.Status]++
	}
	return counts, nil
}

// CompleteAdoption persists the adopted request, its rejected siblings, and
// the pet under one lock. The in-memory stores cannot roll back together, so
// the pet write happens first and aborts the whole operation on failure.
func (r *Repository) CompleteAdoption(ctx context.Context, adopted *domain.Request, siblings []*domain.Request, pet *petsdomain.Pet) (*ports.RequestProjection, error) {
	if adopted == nil || pet == nil {
		return nil, errors.New("cannot complete adoption without request and pet")
	}
	if r.pets == nil {
		return nil, errors.New("memory repository not wired to a pets repository")
	}

	if _, err := r.pets.Save(ctx, pet); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sibling := range siblings {
		if _, err := r.saveLocked(sibling); err != nil {
			return nil, err
		}
	}
	return r.saveLocked(adopted)
}

func (r *Repository) saveLocked(req *domain.Request) (*ports.RequestProjection, error) {
	entry, ok := r.requests[req.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	metadata := projection.Metadata{CreatedAt: entry.metadata.CreatedAt, UpdatedAt: r.now()}
	stored := &storedRequest{request: cloneRequest(req), metadata: metadata}
	r.requests[req.ID] = stored
	return projectionCopy(stored), nil
}

func sortNewestFirst(list []*ports.RequestProjection) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Metadata.CreatedAt.Equal(list[j].Metadata.CreatedAt) {
			return list[i].Entity.ID > list[j].Entity.ID
		}
		return list[i].Metadata.CreatedAt.After(list[j].Metadata.CreatedAt)
	})
}

func projectionCopy(entry *storedRequest) *ports.RequestProjection {
	return &ports.RequestProjection{
		Entity:   cloneRequest(entry.request),
		Metadata: entry.metadata,
	}
}

func cloneRequest(req *domain.Request) *domain.Request {
	if req == nil {
		return nil
	}
	clone := *req
	clone.ContactSharedAt = cloneTime(req.ContactSharedAt)
	clone.ReviewedAt = cloneTime(req.ReviewedAt)
	clone.CompletedAt = cloneTime(req.CompletedAt)
	if req.ReviewedByID != nil {
		reviewer := *req.ReviewedByID
		clone.ReviewedByID = &reviewer
	}
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
