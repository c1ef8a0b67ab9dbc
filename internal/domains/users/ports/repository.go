package ports

import (
	"context"
	"errors"

	"github.com/pethaven/pethaven-api/internal/domains/users/domain"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
	"github.com/pethaven/pethaven-api/internal/shared/projection"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email is already registered")
)

// UserProjection is the materialized view returned by repositories.
type UserProjection = projection.Projection[*domain.User]

type Repository interface {
	Create(ctx context.Context, user *domain.User) (*UserProjection, error)
	Save(ctx context.Context, user *domain.User) (*UserProjection, error)
	GetByID(ctx context.Context, id int64) (*UserProjection, error)
	FindByEmail(ctx context.Context, email string) (*UserProjection, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, page pagination.Request) ([]*UserProjection, int64, error)
}
