package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/users/domain"
	"github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account store used for development and tests.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]*storedUser
	nextID int64
	now    func() time.Time
}

type storedUser struct {
	user     *domain.User
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{
		users: map[int64]*storedUser{},
		now:   time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Create stores a new account, enforcing email uniqueness.
func (r *Repository) Create(_ context.Context, user *domain.User) (*ports.UserProjection, error) {
	if user == nil {
		return nil, errors.New("cannot create nil user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.users {
		if entry.user.Email == user.Email {
			return nil, ports.ErrDuplicateEmail
		}
	}

	r.nextID++
	user.ID = r.nextID
	timestamp := r.now()
	stored := &storedUser{
		user:     cloneUser(user),
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.users[user.ID] = stored
	return projectionCopy(stored), nil
}

// Save replaces an existing account while maintaining metadata.
func (r *Repository) Save(_ context.Context, user *domain.User) (*ports.UserProjection, error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for id, other := range r.users {
		if id != user.ID && other.user.Email == user.Email {
			return nil, ports.ErrDuplicateEmail
		}
	}
	metadata := projection.Metadata{CreatedAt: entry.metadata.CreatedAt, UpdatedAt: r.now()}
	stored := &storedUser{user: cloneUser(user), metadata: metadata}
	r.users[user.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches an account if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*ports.UserProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// FindByEmail fetches the account owning the email.
func (r *Repository) FindByEmail(_ context.Context, email string) (*ports.UserProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.users {
		if entry.user.Email == email {
			return projectionCopy(entry), nil
		}
	}
	return nil, ports.ErrNotFound
}

// Delete removes an account.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ListAll returns one page of accounts plus the total count.
func (r *Repository) ListAll(_ context.Context, page pagination.Request) ([]*ports.UserProjection, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*ports.UserProjection
	for _, entry := range r.users {
		all = append(all, projectionCopy(entry))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Entity.ID < all[j].Entity.ID })

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

func projectionCopy(entry *storedUser) *ports.UserProjection {
	return &ports.UserProjection{
		Entity:   cloneUser(entry.user),
		Metadata: entry.metadata,
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
