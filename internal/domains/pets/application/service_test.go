package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pethaven/pethaven-api/internal/domains/pets/adapters/memory"
	"github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/domains/pets/ports"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
)

type fakeImageStore struct {
	uploads []string
	err     error
}

func (f *fakeImageStore) Upload(_ context.Context, filename string, _ []byte) (*ports.UploadedImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, filename)
	return &ports.UploadedImage{URL: "https://img.example/" + filename, PublicID: filename}, nil
}

func (f *fakeImageStore) Delete(context.Context, string) error { return nil }

func newFixture(t *testing.T) (*Service, *memory.Repository, *fakeImageStore) {
	t.Helper()
	repo := memory.NewRepository()
	images := &fakeImageStore{}
	return NewService(repo, images), repo, images
}

func createListing(t *testing.T, svc *Service, ownerID int64) *ports.PetProjection {
	t.Helper()
	created, err := svc.Create(context.Background(), ports.CreatePetInput{
		OwnerID:   ownerID,
		Name:      "Bruno",
		Species:   "Dog",
		Breed:     "Indie",
		AgeMonths: 18,
	})
	require.NoError(t, err)
	return created
}

func TestCreateAssignsIDAndDefaultsToAvailable(t *testing.T) {
	svc, _, _ := newFixture(t)

	created := createListing(t, svc, 7)
	require.NotZero(t, created.Entity.ID)
	require.Equal(t, domain.StatusAvailable, created.Entity.Status)
	require.Equal(t, int64(7), created.Entity.OwnerID)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.Create(context.Background(), ports.CreatePetInput{OwnerID: 7, Name: "  "})
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestUpdateOnlyByOwner(t *testing.T) {
	svc, _, _ := newFixture(t)
	created := createListing(t, svc, 7)

	name := "Max"
	_, err := svc.Update(context.Background(), ports.UpdatePetInput{
		ID:      created.Entity.ID,
		ActorID: 99,
		Name:    &name,
	})
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	updated, err := svc.Update(context.Background(), ports.UpdatePetInput{
		ID:      created.Entity.ID,
		ActorID: 7,
		Name:    &name,
	})
	require.NoError(t, err)
	require.Equal(t, "Max", updated.Entity.Name)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newFixture(t)
	created := createListing(t, svc, 7)

	status := "LOST"
	_, err := svc.Update(context.Background(), ports.UpdatePetInput{
		ID:      created.Entity.ID,
		ActorID: 7,
		Status:  &status,
	})
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestDeleteGuards(t *testing.T) {
	svc, repo, _ := newFixture(t)
	created := createListing(t, svc, 7)

	err := svc.Delete(context.Background(), created.Entity.ID, 99)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// ADOPTED is reserved for the adoption workflow, so drive it through the
	// aggregate directly.
	proj, err := repo.GetByID(context.Background(), created.Entity.ID)
	require.NoError(t, err)
	require.NoError(t, proj.Entity.MarkAdopted(42, time.Now()))
	_, err = repo.Save(context.Background(), proj.Entity)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.Entity.ID, 7)
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestUpdateCannotSetAdoptedDirectly(t *testing.T) {
	svc, _, _ := newFixture(t)
	created := createListing(t, svc, 7)

	status := string(domain.StatusAdopted)
	_, err := svc.Update(context.Background(), ports.UpdatePetInput{
		ID:      created.Entity.ID,
		ActorID: 7,
		Status:  &status,
	})
	require.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestDeleteRemovesListing(t *testing.T) {
	svc, _, _ := newFixture(t)
	created := createListing(t, svc, 7)

	require.NoError(t, svc.Delete(context.Background(), created.Entity.ID, 7))

	_, err := svc.GetByID(context.Background(), created.Entity.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFindByStatusDefaultsToAvailable(t *testing.T) {
	svc, _, _ := newFixture(t)
	createListing(t, svc, 7)
	second := createListing(t, svc, 7)

	status := string(domain.StatusPending)
	_, err := svc.Update(context.Background(), ports.UpdatePetInput{
		ID:      second.Entity.ID,
		ActorID: 7,
		Status:  &status,
	})
	require.NoError(t, err)

	available, err := svc.FindByStatus(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, domain.StatusAvailable, available[0].Entity.Status)

	both, err := svc.FindByStatus(context.Background(), []string{"AVAILABLE", "PENDING"})
	require.NoError(t, err)
	require.Len(t, both, 2)
}

func TestUploadPhotoAttachesURL(t *testing.T) {
	svc, _, images := newFixture(t)
	created := createListing(t, svc, 7)

	updated, err := svc.UploadPhoto(context.Background(), ports.UploadPhotoInput{
		PetID:    created.Entity.ID,
		ActorID:  7,
		Filename: "bruno.jpg",
		Content:  []byte("jpeg-bytes"),
	})
	require.NoError(t, err)
	require.Len(t, images.uploads, 1)
	require.Len(t, updated.Entity.PhotoURLs, 1)
	require.Contains(t, updated.Entity.PhotoURLs[0], "bruno.jpg")
}

func TestUploadPhotoFailureLeavesListingUntouched(t *testing.T) {
	svc, _, images := newFixture(t)
	created := createListing(t, svc, 7)
	images.err = errors.New("provider down")

	_, err := svc.UploadPhoto(context.Background(), ports.UploadPhotoInput{
		PetID:    created.Entity.ID,
		ActorID:  7,
		Filename: "bruno.jpg",
		Content:  []byte("jpeg-bytes"),
	})
	require.True(t, apperr.IsKind(err, apperr.KindExternal))

	reloaded, err := svc.GetByID(context.Background(), created.Entity.ID)
	require.NoError(t, err)
	require.Empty(t, reloaded.Entity.PhotoURLs)
}

func TestUploadPhotoWithoutStoreConfigured(t *testing.T) {
	svc := NewService(memory.NewRepository(), nil)
	created := createListing(t, svc, 7)

	_, err := svc.UploadPhoto(context.Background(), ports.UploadPhotoInput{
		PetID:    created.Entity.ID,
		ActorID:  7,
		Filename: "bruno.jpg",
	})
	require.True(t, apperr.IsKind(err, apperr.KindExternal))
}
