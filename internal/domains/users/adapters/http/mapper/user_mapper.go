package mapper

import (
	"time"

	"github.com/pethaven/pethaven-api/internal/domains/users/ports"
)

// CreateUser captures the inbound registration payload.
type CreateUser struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateUser captures a partial profile update. Absent fields stay untouched.
type UpdateUser struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	Country   *string `json:"country,omitempty"`
}

// SetRole captures an admin role change.
type SetRole struct {
	Role string `json:"role" binding:"required"`
}

// User is the HTTP representation of an account.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Verified  bool   `json:"verified"`
	Active    bool   `json:"active"`

	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCreateInput maps the transport payload into a service input.
func (c CreateUser) ToCreateInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
	}
}

// ToUpdateInput maps the transport payload into a service input for the
// targeted account.
func (u UpdateUser) ToUpdateInput(userID int64) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		UserID:    userID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		City:      u.City,
		State:     u.State,
		Country:   u.Country,
	}
}

// FromProjection maps a projection into the transport representation.
func FromProjection(p *ports.UserProjection) *User {
	if p == nil || p.Entity == nil {
		return nil
	}
	u := p.Entity
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Verified:  u.Verified,
		Active:    u.Active,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		City:      u.City,
		State:     u.State,
		Country:   u.Country,
		CreatedAt: p.Metadata.CreatedAt,
		UpdatedAt: p.Metadata.UpdatedAt,
	}
}

// FromProjections maps a slice of projections.
func FromProjections(list []*ports.UserProjection) []*User {
	out := make([]*User, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
