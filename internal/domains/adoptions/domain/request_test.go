package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRequestValidation(t *testing.T) {
	_, err := NewRequest(1, 2, "", "555-0100")
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = NewRequest(1, 2, "please", "   ")
	require.ErrorIs(t, err, ErrEmptyPhone)

	req, err := NewRequest(1, 2, "please", "555-0100")
	require.NoError(t, err)
	require.Equal(t, StatusPending, req.Status)
	require.False(t, req.ContactShared)
}

func TestApproveSharesContactOnce(t *testing.T) {
	req, err := NewRequest(1, 2, "please", "555-0100")
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, req.Approve(9, "good fit", at))
	require.Equal(t, StatusApproved, req.Status)
	require.True(t, req.ContactShared)
	require.NotNil(t, req.ContactSharedAt)
	require.Equal(t, at, *req.ContactSharedAt)
	require.NotNil(t, req.ReviewedByID)
	require.Equal(t, int64(9), *req.ReviewedByID)

	require.ErrorIs(t, req.Approve(9, "again", at.Add(time.Hour)), ErrNotPending)
}

func TestRejectRequiresPending(t *testing.T) {
	req, err := NewRequest(1, 2, "please", "555-0100")
	require.NoError(t, err)

	at := time.Now()
	require.NoError(t, req.Reject(9, "not a fit", at))
	require.Equal(t, StatusRejected, req.Status)
	require.False(t, req.ContactShared)

	require.ErrorIs(t, req.Reject(9, "again", at), ErrNotPending)
}

func TestRejectAsSiblingStampsNote(t *testing.T) {
	req, err := NewRequest(1, 2, "please", "555-0100")
	require.NoError(t, err)

	require.NoError(t, req.RejectAsSibling(9, time.Now()))
	require.Equal(t, StatusRejected, req.Status)
	require.Equal(t, SiblingRejectionNote, req.OwnerNotes)
}

func TestMarkAdoptedRequiresApproved(t *testing.T) {
	req, err := NewRequest(1, 2, "please", "555-0100")
	require.NoError(t, err)

	require.ErrorIs(t, req.MarkAdopted(time.Now()), ErrNotApproved)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, req.Approve(9, "", at))
	require.NoError(t, req.MarkAdopted(at.Add(time.Hour)))
	require.Equal(t, StatusAdopted, req.Status)
	require.NotNil(t, req.CompletedAt)
	require.False(t, req.Deletable())
}

func TestCancelAndWithdrawGuards(t *testing.T) {
	req, err := NewRequest(1, 2, "please", "555-0100")
	require.NoError(t, err)
	require.NoError(t, req.Cancel())
	require.Equal(t, StatusCancelled, req.Status)
	require.ErrorIs(t, req.Cancel(), ErrNotCancellable)

	req, err = NewRequest(1, 3, "please", "555-0101")
	require.NoError(t, err)
	require.NoError(t, req.Approve(9, "", time.Now()))
	require.NoError(t, req.Withdraw())
	require.Equal(t, StatusWithdrawn, req.Status)

	req, err = NewRequest(1, 4, "please", "555-0102")
	require.NoError(t, err)
	require.NoError(t, req.Approve(9, "", time.Now()))
	require.NoError(t, req.MarkAdopted(time.Now()))
	require.ErrorIs(t, req.Cancel(), ErrAdoptedFinal)
	require.ErrorIs(t, req.Withdraw(), ErrAdoptedFinal)
	require.True(t, req.Terminal())
}
