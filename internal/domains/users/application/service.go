package application

import (
	"context"
	"strings"

	"github.com/pethaven/pethaven-api/internal/domains/users/domain"
	"github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

var _ ports.Service = (*Service)(nil)

// Service manages account records. Authentication and OAuth linking live
// upstream; this service receives already-resolved identities.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new account with the USER role.
func (s *Service) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserProjection, error) {
	user, err := domain.NewUser(input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, mapError(err)
	}
	user.Phone = input.Phone
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetByID loads an account.
func (s *Service) GetByID(ctx context.Context, id int64) (*ports.UserProjection, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

// GetByEmail loads an account by its normalized email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*ports.UserProjection, error) {
	found, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, mapError(err)
	}
	return found, nil
}

// Update applies the provided profile fields, leaving the rest untouched.
func (s *Service) Update(ctx context.Context, input ports.UpdateUserInput) (*ports.UserProjection, error) {
	found, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, mapError(err)
	}
	user := found.Entity

	if input.FirstName != nil || input.LastName != nil {
		first, last := user.FirstName, user.LastName
		if input.FirstName != nil {
			first = *input.FirstName
		}
		if input.LastName != nil {
			last = *input.LastName
		}
		if err := user.SetName(first, last); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.Country != nil {
		user.Country = *input.Country
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// SetRole changes the account role.
func (s *Service) SetRole(ctx context.Context, userID int64, role string) (*ports.UserProjection, error) {
	found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	user := found.Entity
	if err := user.SetRole(domain.Role(role)); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Deactivate disables the account without removing its records.
func (s *Service) Deactivate(ctx context.Context, userID int64) (*ports.UserProjection, error) {
	found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	user := found.Entity
	user.Deactivate()
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes the account entirely.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// ListAll returns one page of accounts.
func (s *Service) ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*ports.UserProjection], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListAll(ctx, page)
	if err != nil {
		return pagination.Page[*ports.UserProjection]{}, mapError(err)
	}
	return pagination.NewPage(items, page, total), nil
}
