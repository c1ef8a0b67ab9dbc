package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pethaven/pethaven-api/internal/domains/users/adapters/memory"
	"github.com/pethaven/pethaven-api/internal/domains/users/domain"
	"github.com/pethaven/pethaven-api/internal/domains/users/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

func newService() *Service {
	return NewService(memory.NewRepository())
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc := newService()
	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "  Maya.Iyer@Example.COM ",
		FirstName: "Maya",
		LastName:  "Iyer",
	})
	require.NoError(t, err)
	require.Equal(t, "maya.iyer@example.com", created.Entity.Email)
	require.Equal(t, domain.RoleUser, created.Entity.Role)
	require.True(t, created.Entity.Active)
	require.False(t, created.Entity.Verified)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	_, err := svc.Create(ctx, ports.CreateUserInput{Email: "maya@example.com", FirstName: "Maya"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, ports.CreateUserInput{Email: "MAYA@example.com", FirstName: "Other"})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.CreateUserInput{FirstName: "Maya"})
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))

	_, err = svc.Create(ctx, ports.CreateUserInput{Email: "maya@example.com"})
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestGetByEmailNormalizesLookup(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.Create(ctx, ports.CreateUserInput{Email: "maya@example.com", FirstName: "Maya"})
	require.NoError(t, err)

	found, err := svc.GetByEmail(ctx, " MAYA@example.com ")
	require.NoError(t, err)
	require.Equal(t, created.Entity.ID, found.Entity.ID)

	_, err = svc.GetByEmail(ctx, "nobody@example.com")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.Create(ctx, ports.CreateUserInput{
		Email:     "maya@example.com",
		FirstName: "Maya",
		LastName:  "Iyer",
		Phone:     "+91-90000-00000",
	})
	require.NoError(t, err)

	bio := "Fosters senior dogs."
	city := "Pune"
	updated, err := svc.Update(ctx, ports.UpdateUserInput{
		UserID: created.Entity.ID,
		Bio:    &bio,
		City:   &city,
	})
	require.NoError(t, err)
	require.Equal(t, bio, updated.Entity.Bio)
	require.Equal(t, city, updated.Entity.City)
	require.Equal(t, "Maya", updated.Entity.FirstName)
	require.Equal(t, "+91-90000-00000", updated.Entity.Phone)

	empty := ""
	_, err = svc.Update(ctx, ports.UpdateUserInput{UserID: created.Entity.ID, FirstName: &empty})
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestSetRoleValidates(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.Create(ctx, ports.CreateUserInput{Email: "maya@example.com", FirstName: "Maya"})
	require.NoError(t, err)

	promoted, err := svc.SetRole(ctx, created.Entity.ID, "ADMIN")
	require.NoError(t, err)
	require.True(t, promoted.Entity.IsAdmin())

	_, err = svc.SetRole(ctx, created.Entity.ID, "SUPERUSER")
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestDeactivateAndDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	created, err := svc.Create(ctx, ports.CreateUserInput{Email: "maya@example.com", FirstName: "Maya"})
	require.NoError(t, err)

	disabled, err := svc.Deactivate(ctx, created.Entity.ID)
	require.NoError(t, err)
	require.False(t, disabled.Entity.Active)

	require.NoError(t, svc.Delete(ctx, created.Entity.ID))
	_, err = svc.GetByID(ctx, created.Entity.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.Delete(ctx, created.Entity.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListAllPaginates(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		_, err := svc.Create(ctx, ports.CreateUserInput{Email: email, FirstName: "User"})
		require.NoError(t, err)
	}

	page, err := svc.ListAll(ctx, pagination.Request{Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(3), page.TotalItems)
	require.Equal(t, 2, page.TotalPages)

	last, err := svc.ListAll(ctx, pagination.Request{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
}
