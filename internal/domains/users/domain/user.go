package domain

import (
	"errors"
	"strings"
)

// Role classifies what a user account may do.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var (
	ErrEmptyEmail     = errors.New("user email is required")
	ErrEmptyFirstName = errors.New("user first name is required")
	ErrInvalidRole    = errors.New("user role is invalid")
	ErrInactive       = errors.New("user account is deactivated")
)

// User is an account record. Authentication happens upstream; this context
// only stores the resolved identity and profile details.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
	Verified  bool
	Active    bool

	Bio       string
	AvatarURL string
	City      string
	State     string
	Country   string
}

// NewUser validates the invariants and builds an active USER account.
func NewUser(email, firstName, lastName string) (*User, error) {
	u := &User{Role: RoleUser, Active: true}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	return u, nil
}

// SetEmail normalizes and stores the account email.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmptyEmail
	}
	u.Email = email
	return nil
}

// SetName stores the display name. The last name may be empty.
func (u *User) SetName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return ErrEmptyFirstName
	}
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

// SetRole validates known roles before storing.
func (u *User) SetRole(role Role) error {
	switch role {
	case RoleUser, RoleAdmin:
		u.Role = role
		return nil
	default:
		return ErrInvalidRole
	}
}

// Verify marks the account as email-verified.
func (u *User) Verify() { u.Verified = true }

// Deactivate disables the account without deleting its records.
func (u *User) Deactivate() { u.Active = false }

// Activate re-enables a deactivated account.
func (u *User) Activate() { u.Active = true }

// FullName joins the name parts for display.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
