package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates the adoption-request lifecycle. ADOPTED, REJECTED,
// CANCELLED, and WITHDRAWN are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusAdopted   Status = "ADOPTED"
	StatusCancelled Status = "CANCELLED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// SiblingRejectionNote is stamped on every pending request auto-rejected
// when another applicant completes the adoption.
const SiblingRejectionNote = "Pet has been adopted by another applicant"

var (
	ErrEmptyMessage   = errors.New("adoption message is required")
	ErrEmptyPhone     = errors.New("requester phone is required")
	ErrNotPending     = errors.New("only pending requests can be reviewed")
	ErrNotApproved    = errors.New("only approved requests can be marked as adopted")
	ErrNotCancellable = errors.New("request can no longer be cancelled")
	ErrAdoptedFinal   = errors.New("adopted requests are immutable")
)

// Request is the adoption-request aggregate. Status moves only through the
// transition methods below; timestamps are derived, never user-supplied.
type Request struct {
	ID          int64
	PetID       int64
	RequesterID int64

	Message          string
	RequesterPhone   string
	RequesterAddress string
	HousingType      string

	HasExperience     bool
	HasOtherPets      bool
	HasChildren       bool
	YearsOfExperience int

	Status         Status
	OwnerNotes     string
	RequesterNotes string

	ContactShared   bool
	ContactSharedAt *time.Time

	ReviewedByID *int64
	ReviewedAt   *time.Time
	CompletedAt  *time.Time
}

// NewRequest validates the invariants and builds a pending request.
func NewRequest(petID, requesterID int64, message, phone string) (*Request, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if strings.TrimSpace(phone) == "" {
		return nil, ErrEmptyPhone
	}
	return &Request{
		PetID:          petID,
		RequesterID:    requesterID,
		Message:        message,
		RequesterPhone: phone,
		Status:         StatusPending,
	}, nil
}

// Approve moves PENDING to APPROVED, releasing the owner's contact details
// to the requester exactly once.
func (r *Request) Approve(reviewerID int64, notes string, at time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusApproved
	r.OwnerNotes = notes
	r.ContactShared = true
	shared := at
	r.ContactSharedAt = &shared
	r.recordReview(reviewerID, at)
	return nil
}

// Reject moves PENDING to REJECTED. Contact details are never shared.
func (r *Request) Reject(reviewerID int64, notes string, at time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusRejected
	r.OwnerNotes = notes
	r.recordReview(reviewerID, at)
	return nil
}

// RejectAsSibling auto-rejects a pending request because another applicant
// completed the adoption, stamping the fixed note.
func (r *Request) RejectAsSibling(reviewerID int64, at time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusRejected
	r.OwnerNotes = SiblingRejectionNote
	r.recordReview(reviewerID, at)
	return nil
}

// MarkAdopted moves APPROVED to the terminal ADOPTED state.
func (r *Request) MarkAdopted(at time.Time) error {
	if r.Status != StatusApproved {
		return ErrNotApproved
	}
	r.Status = StatusAdopted
	completed := at
	r.CompletedAt = &completed
	return nil
}

// Cancel moves PENDING or APPROVED to the terminal CANCELLED state.
func (r *Request) Cancel() error {
	if r.Status == StatusAdopted {
		return ErrAdoptedFinal
	}
	if r.Status != StatusPending && r.Status != StatusApproved {
		return ErrNotCancellable
	}
	r.Status = StatusCancelled
	return nil
}

// Withdraw moves PENDING or APPROVED to the terminal WITHDRAWN state.
func (r *Request) Withdraw() error {
	if r.Status == StatusAdopted {
		return ErrAdoptedFinal
	}
	if r.Status != StatusPending && r.Status != StatusApproved {
		return ErrNotCancellable
	}
	r.Status = StatusWithdrawn
	return nil
}

// Deletable reports whether the request may be hard-deleted.
func (r *Request) Deletable() bool { return r.Status != StatusAdopted }

// Terminal reports whether the request reached a final state.
func (r *Request) Terminal() bool {
	switch r.Status {
	case StatusAdopted, StatusRejected, StatusCancelled, StatusWithdrawn:
		return true
	default:
		return false
	}
}

func (r *Request) recordReview(reviewerID int64, at time.Time) {
	reviewer := reviewerID
	r.ReviewedByID = &reviewer
	reviewed := at
	r.ReviewedAt = &reviewed
}
