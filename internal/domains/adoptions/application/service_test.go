package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/adapters/memory"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	petsmemory "github.com/pethaven/pethaven-api/internal/domains/pets/adapters/memory"
	petsdomain "github.com/pethaven/pethaven-api/internal/domains/pets/domain"
	"github.com/pethaven/pethaven-api/internal/shared/apperr"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

const (
	ownerID     = int64(10)
	requesterID = int64(20)
)

func newFixture(t *testing.T) (*Service, *petsmemory.Repository, int64) {
	t.Helper()
	pets := petsmemory.NewRepository()
	repo := memory.NewRepository(pets)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo, pets, WithClock(func() time.Time { return now }))

	pet, err := petsdomain.NewPet(0, ownerID, "Biscuit")
	require.NoError(t, err)
	saved, err := pets.Save(context.Background(), pet)
	require.NoError(t, err)
	return svc, pets, saved.Entity.ID
}

func createInput(petID int64, requester int64) ports.CreateRequestInput {
	return ports.CreateRequestInput{
		PetID:          petID,
		RequesterID:    requester,
		Message:        "We have a big garden",
		RequesterPhone: "555-0100",
	}
}

func TestCreateRequest(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, created.Entity.Status)
	require.NotZero(t, created.Entity.ID)
}

func TestCreateRejectsOwnPet(t *testing.T) {
	svc, _, petID := newFixture(t)

	_, err := svc.Create(context.Background(), createInput(petID, ownerID))
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestCreateRejectsDuplicatePending(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput(petID, requesterID))
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateRejectsUnavailablePet(t *testing.T) {
	svc, pets, petID := newFixture(t)
	ctx := context.Background()

	found, err := pets.GetByID(ctx, petID)
	require.NoError(t, err)
	pet := found.Entity
	require.NoError(t, pet.MarkAdopted(99, time.Now()))
	_, err = pets.Save(ctx, pet)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput(petID, requesterID))
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestApproveByOwnerSharesContact(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, ports.ReviewInput{RequestID: created.Entity.ID, ActorID: ownerID, Notes: "welcome"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, approved.Entity.Status)
	require.True(t, approved.Entity.ContactShared)
	require.NotNil(t, approved.Entity.ContactSharedAt)
	require.Equal(t, "welcome", approved.Entity.OwnerNotes)
}

func TestApproveRejectsNonOwner(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, ports.ReviewInput{RequestID: created.Entity.ID, ActorID: requesterID})
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestMarkAdoptedRejectsSiblingsAndUpdatesPet(t *testing.T) {
	svc, pets, petID := newFixture(t)
	ctx := context.Background()

	winner, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)
	sibling, err := svc.Create(ctx, createInput(petID, requesterID+1))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, ports.ReviewInput{RequestID: winner.Entity.ID, ActorID: ownerID})
	require.NoError(t, err)

	completed, err := svc.MarkAdopted(ctx, winner.Entity.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAdopted, completed.Entity.Status)
	require.NotNil(t, completed.Entity.CompletedAt)

	rejected, err := svc.GetByID(ctx, sibling.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Entity.Status)
	require.Equal(t, domain.SiblingRejectionNote, rejected.Entity.OwnerNotes)

	petFound, err := pets.GetByID(ctx, petID)
	require.NoError(t, err)
	require.Equal(t, petsdomain.StatusAdopted, petFound.Entity.Status)
	require.NotNil(t, petFound.Entity.AdoptedByID)
	require.Equal(t, requesterID, *petFound.Entity.AdoptedByID)
}

func TestMarkAdoptedRequiresApproval(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)

	_, err = svc.MarkAdopted(ctx, created.Entity.ID, ownerID)
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestCancelOnlyByRequester(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, created.Entity.ID, ownerID)
	require.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	cancelled, err := svc.Cancel(ctx, created.Entity.ID, requesterID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Entity.Status)
}

func TestDeleteGuards(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)

	require.Error(t, svc.Delete(ctx, created.Entity.ID, 999))
	require.NoError(t, svc.Delete(ctx, created.Entity.ID, requesterID))

	err = svc.Delete(ctx, created.Entity.ID, requesterID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteRefusesCompletedAdoption(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, ports.ReviewInput{RequestID: created.Entity.ID, ActorID: ownerID})
	require.NoError(t, err)
	_, err = svc.MarkAdopted(ctx, created.Entity.ID, ownerID)
	require.NoError(t, err)

	err = svc.Delete(ctx, created.Entity.ID, requesterID)
	require.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestListForOwner(t *testing.T) {
	svc, pets, petID := newFixture(t)
	ctx := context.Background()

	otherPet, err := petsdomain.NewPet(0, ownerID+1, "Mango")
	require.NoError(t, err)
	otherSaved, err := pets.Save(ctx, otherPet)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput(otherSaved.Entity.ID, requesterID))
	require.NoError(t, err)

	mine, err := svc.ListForOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, petID, mine[0].Entity.PetID)
}

func TestListAllPaginates(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	for i := int64(0); i < 5; i++ {
		_, err := svc.Create(ctx, createInput(petID, requesterID+i))
		require.NoError(t, err)
	}

	page, err := svc.ListAll(ctx, pagination.Request{Page: 0, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(5), page.TotalItems)
	require.Equal(t, 3, page.TotalPages)

	last, err := svc.ListAll(ctx, pagination.Request{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
}

func TestCountByStatus(t *testing.T) {
	svc, _, petID := newFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, createInput(petID, requesterID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput(petID, requesterID+1))
	require.NoError(t, err)
	_, err = svc.Reject(ctx, ports.ReviewInput{RequestID: first.Entity.ID, ActorID: ownerID, Notes: "sorry"})
	require.NoError(t, err)

	counts, err := svc.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts[domain.StatusPending])
	require.Equal(t, int64(1), counts[domain.StatusRejected])
}
