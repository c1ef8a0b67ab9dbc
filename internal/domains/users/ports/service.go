package ports

import (
	"context"

	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

// CreateUserInput carries the fields accepted when registering an account.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// UpdateUserInput mutates only the provided fields.
type UpdateUserInput struct {
	UserID    int64
	FirstName *string
	LastName  *string
	Phone     *string
	Bio       *string
	AvatarURL *string
	City      *string
	State     *string
	Country   *string
}

type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserProjection, error)
	GetByID(ctx context.Context, id int64) (*UserProjection, error)
	GetByEmail(ctx context.Context, email string) (*UserProjection, error)
	Update(ctx context.Context, input UpdateUserInput) (*UserProjection, error)
	SetRole(ctx context.Context, userID int64, role string) (*UserProjection, error)
	Deactivate(ctx context.Context, userID int64) (*UserProjection, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*UserProjection], error)
}
